package lessons

import "fmt"

// fallbackPatterns are sentence templates used when the LLM is
// unavailable. Each takes one lesson word.
var fallbackPatterns = []struct {
	chinese string
	pinyin  string
	english string
}{
	{"你好！%s怎么样？", "Nǐ hǎo! %s zěnmeyàng?", "Hello! How is %s?"},
	{"我喜欢%s。", "Wǒ xǐhuan %s.", "I like %s."},
	{"%s在哪里？", "%s zài nǎlǐ?", "Where is %s?"},
	{"这是%s吗？", "Zhè shì %s ma?", "Is this %s?"},
	{"我想要%s。", "Wǒ xiǎng yào %s.", "I would like %s."},
}

// fallbackContent builds deterministic template-based content so a
// lesson still works with no LLM configured.
func fallbackContent(input LessonInput) *Content {
	content := &Content{Fallback: true}

	words := input.Words
	if len(words) > len(fallbackPatterns) {
		words = words[:len(fallbackPatterns)]
	}
	for i, w := range words {
		p := fallbackPatterns[i%len(fallbackPatterns)]
		content.Dialogues = append(content.Dialogues, DialogueLine{
			Context: "practice sentence",
			Chinese: fmt.Sprintf(p.chinese, w.Simplified),
			Pinyin:  fmt.Sprintf(p.pinyin, w.Pinyin),
			English: fmt.Sprintf(p.english, w.PrimaryDefinition()),
		})
	}

	content.GrammarPoints = []string{
		"是 sentences: A 是 B (A is B)",
		"吗 questions: statement + 吗 turns it into a yes/no question",
	}
	content.Exercises = []string{
		"Fill in the blank: 我___学生。(是)",
		"Translate: hello → ___",
	}
	return content
}

// fallbackDialogue builds a template dialogue for a situation.
func fallbackDialogue(input DialogueInput) *Content {
	content := &Content{Fallback: true}

	n := input.Exchanges
	if n <= 0 {
		n = 4
	}
	words := input.Words
	for i := 0; i < n && i < len(words); i++ {
		p := fallbackPatterns[i%len(fallbackPatterns)]
		speaker := "A"
		if i%2 == 1 {
			speaker = "B"
		}
		content.Dialogues = append(content.Dialogues, DialogueLine{
			Context: speaker,
			Chinese: fmt.Sprintf(p.chinese, words[i].Simplified),
			Pinyin:  fmt.Sprintf(p.pinyin, words[i].Pinyin),
			English: fmt.Sprintf(p.english, words[i].PrimaryDefinition()),
		})
	}
	return content
}
