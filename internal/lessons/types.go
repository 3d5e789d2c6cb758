package lessons

import "github.com/david1005910/hanyu/internal/vocab"

// DialogueLine is one exchange in a generated dialogue, with pinyin and
// an English gloss alongside the Chinese.
type DialogueLine struct {
	Context string
	Chinese string
	Pinyin  string
	English string
}

// Content is the generated study material for one lesson's words.
type Content struct {
	Dialogues     []DialogueLine
	GrammarPoints []string
	Exercises     []string

	// Fallback reports that the content came from the built-in
	// templates rather than the LLM.
	Fallback bool
}

// Lesson bundles a word slice with its generated content.
type Lesson struct {
	Number  int
	Level   string
	Theme   string
	Words   []vocab.Word
	Content Content
}

// LessonInput holds the context for content generation.
type LessonInput struct {
	Words []vocab.Word
	Level string // HSK level label, e.g. "HSK1"
	Theme string // optional topic; empty means everyday conversation
}

// DialogueInput holds the context for situational dialogue generation.
type DialogueInput struct {
	Words     []vocab.Word
	Situation string
	Exchanges int
}
