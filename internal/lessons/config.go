package lessons

// Sampling holds the generation parameters of a chat session.
// Zero TopP or TopK leaves the provider default in place.
type Sampling struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// LessonSampling returns the parameters used by the lesson session.
func LessonSampling() Sampling {
	return Sampling{
		MaxTokens:   8192,
		Temperature: 0.7,
		TopP:        0.9,
		TopK:        40,
	}
}

// QASampling returns the parameters used by the Q&A session.
func QASampling() Sampling {
	return Sampling{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
