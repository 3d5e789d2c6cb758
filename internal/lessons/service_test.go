package lessons

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/david1005910/hanyu/internal/llm"
	"github.com/david1005910/hanyu/internal/vocab"
)

func lessonInput() LessonInput {
	return LessonInput{
		Level: "HSK1",
		Words: []vocab.Word{
			{Simplified: "你好", Pinyin: "nǐ hǎo", Definitions: []string{"hello"}},
			{Simplified: "茶", Pinyin: "chá", Definitions: []string{"tea"}},
		},
	}
}

func TestGenerateContentParsesProviderResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"dialogues": [
				{"context": "greeting", "chinese": "你好！", "pinyin": "Nǐ hǎo!", "english": "Hello!"}
			],
			"grammar_points": ["greetings with 你好"],
			"exercises": ["Translate: hello"]
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	content := svc.GenerateContent(context.Background(), lessonInput())
	if content.Fallback {
		t.Fatal("provider content marked as fallback")
	}
	if len(content.Dialogues) != 1 || content.Dialogues[0].Chinese != "你好！" {
		t.Errorf("dialogues = %+v", content.Dialogues)
	}
	if len(content.GrammarPoints) != 1 || len(content.Exercises) != 1 {
		t.Errorf("grammar/exercises = %v / %v", content.GrammarPoints, content.Exercises)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("provider called %d times", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ContentSchema {
		t.Error("request missing content schema")
	}
	if !strings.Contains(req.Messages[0].Content, "你好") {
		t.Error("prompt does not include the lesson words")
	}
}

func TestGenerateContentFallsBackOnProviderError(t *testing.T) {
	// Empty mock queue makes Generate return ErrProviderUnavailable.
	svc := NewService(llm.NewMockProvider(), DefaultConfig())

	content := svc.GenerateContent(context.Background(), lessonInput())
	if !content.Fallback {
		t.Fatal("expected fallback content")
	}
	if len(content.Dialogues) != 2 {
		t.Errorf("fallback produced %d dialogues for 2 words", len(content.Dialogues))
	}
	if !strings.Contains(content.Dialogues[0].Chinese, "你好") {
		t.Errorf("fallback dialogue missing the word: %+v", content.Dialogues[0])
	}
	if len(content.GrammarPoints) == 0 || len(content.Exercises) == 0 {
		t.Error("fallback content missing grammar points or exercises")
	}
}

func TestGenerateContentFallsBackOnBadJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`not json`),
	})
	svc := NewService(mock, DefaultConfig())

	content := svc.GenerateContent(context.Background(), lessonInput())
	if !content.Fallback {
		t.Fatal("expected fallback content on unparseable response")
	}
}

func TestGenerateContentNilProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	content := svc.GenerateContent(context.Background(), lessonInput())
	if !content.Fallback {
		t.Fatal("nil provider should produce fallback content")
	}
}

func TestGenerateDialogue(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"dialogues": [
				{"context": "A", "chinese": "我想要茶。", "pinyin": "Wǒ xiǎng yào chá.", "english": "I would like tea."},
				{"context": "B", "chinese": "好的。", "pinyin": "Hǎo de.", "english": "Okay."}
			]
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	content := svc.GenerateDialogue(context.Background(), DialogueInput{
		Words:     lessonInput().Words,
		Situation: "ordering at a tea house",
		Exchanges: 2,
	})
	if content.Fallback {
		t.Fatal("provider dialogue marked as fallback")
	}
	if len(content.Dialogues) != 2 {
		t.Errorf("got %d exchanges, want 2", len(content.Dialogues))
	}
	if mock.Calls[0].Schema != DialogueSchema {
		t.Error("request missing dialogue schema")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "tea house") {
		t.Error("prompt does not include the situation")
	}
}

func TestGenerateDialogueFallback(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())

	content := svc.GenerateDialogue(context.Background(), DialogueInput{
		Words:     lessonInput().Words,
		Situation: "introductions",
		Exchanges: 4,
	})
	if !content.Fallback {
		t.Fatal("expected fallback dialogue")
	}
	// Only two vocabulary words available, so two exchanges.
	if len(content.Dialogues) != 2 {
		t.Errorf("got %d exchanges, want 2", len(content.Dialogues))
	}
}
