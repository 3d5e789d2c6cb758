package lessons

import "github.com/david1005910/hanyu/internal/llm"

// ContentSchema defines the JSON schema for lesson content generation.
var ContentSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "Study material for a set of Chinese vocabulary words: dialogues, grammar points, and exercises",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dialogues": map[string]any{
				"type":        "array",
				"items":       dialogueLineSchema,
				"description": "2-4 short dialogues using the lesson words",
			},
			"grammar_points": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 grammar points illustrated by the dialogues",
			},
			"exercises": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 short practice exercises",
			},
		},
		"required":             []any{"dialogues", "grammar_points", "exercises"},
		"additionalProperties": false,
	},
}

// DialogueSchema defines the JSON schema for situational dialogue
// generation.
var DialogueSchema = &llm.Schema{
	Name:        "situational-dialogue",
	Description: "A situational dialogue practicing given vocabulary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dialogues": map[string]any{
				"type":        "array",
				"items":       dialogueLineSchema,
				"description": "The dialogue exchanges in order",
			},
		},
		"required":             []any{"dialogues"},
		"additionalProperties": false,
	},
}

var dialogueLineSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"context": map[string]any{
			"type":        "string",
			"description": "Who is speaking or what the situation is",
		},
		"chinese": map[string]any{
			"type":        "string",
			"description": "The line in simplified Chinese",
		},
		"pinyin": map[string]any{
			"type":        "string",
			"description": "Pinyin with tone marks",
		},
		"english": map[string]any{
			"type":        "string",
			"description": "English translation",
		},
	},
	"required":             []any{"context", "chinese", "pinyin", "english"},
	"additionalProperties": false,
}
