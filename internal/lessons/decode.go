package lessons

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoPayload reports that a model turn carries no usable structured
// payload. It is not a user-facing error: callers fall back to showing
// the raw text.
var ErrNoPayload = errors.New("no structured payload")

// Extract returns the substring from the first '{' to the last '}'
// inclusive. ok is false when either brace is missing or they are out
// of order.
func Extract(text string) (raw string, ok bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < 0 || start > end {
		return "", false
	}
	return text[start : end+1], true
}

// Decode extracts and parses the tutoring screen embedded in text.
// Surrounding prose is ignored. Only syntax is checked: missing fields
// decode as zero values and fields of the wrong type are read leniently.
// Every failure wraps ErrNoPayload.
func Decode(text string) (*Screen, error) {
	raw, ok := Extract(text)
	if !ok {
		return nil, fmt.Errorf("%w: no braces", ErrNoPayload)
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: malformed JSON between braces", ErrNoPayload)
	}
	return parseScreen(gjson.Parse(raw)), nil
}

// Encode serializes a screen in the wire format Decode reads.
func Encode(s *Screen) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode screen: %w", err)
	}
	return b, nil
}

func parseScreen(root gjson.Result) *Screen {
	ui := root.Get("ui_state")
	s := &Screen{
		UIState: UIState{
			CurrentModuleID:   ui.Get("current_module_id").String(),
			CurrentStep:       int(ui.Get("current_step").Int()),
			ScreenTitle:       ui.Get("screen_title").String(),
			ShowSidebar:       ui.Get("show_sidebar").Bool(),
			ShowPracticePanel: ui.Get("show_practice_panel").Bool(),
		},
		Progress: parseProgress(root.Get("progress")),
	}

	for _, b := range arrayOf(root.Get("content_blocks")) {
		if b.IsObject() {
			s.ContentBlocks = append(s.ContentBlocks, parseBlock(b))
		}
	}
	for _, a := range arrayOf(root.Get("next_actions")) {
		if a.IsObject() {
			s.NextActions = append(s.NextActions, parseAction(a))
		}
	}
	return s
}

func parseBlock(b gjson.Result) ContentBlock {
	block := ContentBlock{
		Type:       b.Get("type").String(),
		Title:      b.Get("title").String(),
		Text:       b.Get("text").String(),
		Choices:    stringsOf(b.Get("choices")),
		VisualType: b.Get("visualType").String(),
		Data:       rawOf(b.Get("data")),
	}
	if block.VisualType == "" {
		block.VisualType = b.Get("visual_type").String()
	}
	return block
}

func parseAction(a gjson.Result) NextAction {
	return NextAction{
		ID:         a.Get("id").String(),
		Label:      a.Get("label").String(),
		ActionType: a.Get("action_type").String(),
		Payload:    rawOf(a.Get("payload")),
	}
}

func parseProgress(p gjson.Result) Progress {
	progress := Progress{
		OverallCompletion: p.Get("overall_completion").Float(),
	}

	if mc := p.Get("module_completion"); mc.IsObject() {
		progress.ModuleCompletion = make(map[string]float64)
		mc.ForEach(func(k, v gjson.Result) bool {
			progress.ModuleCompletion[k.String()] = v.Float()
			return true
		})
	}

	switch p.Get("last_user_answer_correct").Type {
	case gjson.True:
		v := true
		progress.LastUserAnswerCorrect = &v
	case gjson.False:
		v := false
		progress.LastUserAnswerCorrect = &v
	}
	return progress
}

// arrayOf returns the elements of r, or nil when r is not an array.
func arrayOf(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

// stringsOf returns the elements of an array as strings. Non-array
// values yield nil.
func stringsOf(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

// rawOf keeps a JSON value verbatim. Absent and null values yield nil.
func rawOf(r gjson.Result) json.RawMessage {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(r.Raw)
}
