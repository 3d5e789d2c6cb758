package lessons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/david1005910/hanyu/internal/llm"
)

// Service generates lesson content through an LLM provider, falling
// back to built-in templates when no provider is configured or the
// provider fails.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a lesson content service. A nil provider always
// produces fallback content.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type dialogueLineOutput struct {
	Context string `json:"context"`
	Chinese string `json:"chinese"`
	Pinyin  string `json:"pinyin"`
	English string `json:"english"`
}

type contentOutput struct {
	Dialogues     []dialogueLineOutput `json:"dialogues"`
	GrammarPoints []string             `json:"grammar_points"`
	Exercises     []string             `json:"exercises"`
}

// GenerateContent produces study material for a lesson's words. Errors
// from the provider are absorbed into fallback content so a lesson
// always renders.
func (s *Service) GenerateContent(ctx context.Context, input LessonInput) *Content {
	if s.provider == nil {
		return fallbackContent(input)
	}

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(input)},
		},
		Schema:      ContentSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fallbackContent(input)
	}

	content, err := parseContent(resp.Content)
	if err != nil {
		return fallbackContent(input)
	}
	return content
}

// GenerateDialogue produces a situational dialogue over the given
// vocabulary, with the same fallback behavior as GenerateContent.
func (s *Service) GenerateDialogue(ctx context.Context, input DialogueInput) *Content {
	if s.provider == nil {
		return fallbackDialogue(input)
	}

	req := llm.Request{
		System: dialogueSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDialogueUserMessage(input)},
		},
		Schema:      DialogueSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fallbackDialogue(input)
	}

	content, err := parseContent(resp.Content)
	if err != nil {
		return fallbackDialogue(input)
	}
	return content
}

func parseContent(raw json.RawMessage) (*Content, error) {
	var out contentOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}

	content := &Content{
		GrammarPoints: out.GrammarPoints,
		Exercises:     out.Exercises,
	}
	for _, d := range out.Dialogues {
		content.Dialogues = append(content.Dialogues, DialogueLine{
			Context: d.Context,
			Chinese: d.Chinese,
			Pinyin:  d.Pinyin,
			English: d.English,
		})
	}
	return content, nil
}
