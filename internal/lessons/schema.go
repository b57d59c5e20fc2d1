package lessons

// ScreenSchemaName identifies the compiled screen schema.
const ScreenSchemaName = "tutoring-screen"

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// ScreenSchema describes the tutoring screen a lesson turn should carry.
// Decode never enforces it; Lint uses it to report drift.
var ScreenSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"ui_state": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"current_module_id":   map[string]any{"type": "string"},
				"current_step":        map[string]any{"type": "integer"},
				"screen_title":        map[string]any{"type": "string"},
				"show_sidebar":        map[string]any{"type": "boolean"},
				"show_practice_panel": map[string]any{"type": "boolean"},
			},
			"required": []any{"current_module_id", "current_step", "screen_title"},
		},
		"content_blocks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type": map[string]any{
						"type": "string",
						"enum": []any{BlockLesson, BlockExample, BlockPractice, BlockCheckQuestion, BlockVisual},
					},
					"title":      map[string]any{"type": "string"},
					"text":       map[string]any{"type": "string"},
					"choices":    stringArray,
					"visualType": map[string]any{"type": "string"},
					"data":       map[string]any{"type": "object"},
				},
				"required": []any{"type"},
			},
		},
		"next_actions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":    map[string]any{"type": "string"},
					"label": map[string]any{"type": "string"},
					"action_type": map[string]any{
						"type": "string",
						"enum": []any{
							ActionAnswerChoice, ActionFreeTextAnswer, ActionGoToModule,
							ActionRetry, ActionNextStep, ActionNextModule, ActionSwitchMode,
						},
					},
					"payload": map[string]any{"type": "object"},
				},
				"required": []any{"id", "label", "action_type"},
			},
		},
		"progress": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"module_completion": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "number"},
				},
				"overall_completion":       map[string]any{"type": "number"},
				"last_user_answer_correct": map[string]any{"type": []any{"boolean", "null"}},
			},
		},
	},
	"required": []any{"ui_state", "content_blocks", "next_actions", "progress"},
}
