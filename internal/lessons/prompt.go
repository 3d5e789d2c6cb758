package lessons

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are an experienced Chinese language teacher creating HSK study material for English-speaking learners. Keep vocabulary strictly within the given word list plus very common function words.`

func buildLessonUserMessage(input LessonInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Level: %s\n", input.Level))
	if input.Theme != "" {
		b.WriteString(fmt.Sprintf("Theme: %s\n", input.Theme))
	} else {
		b.WriteString("Theme: everyday conversation\n")
	}

	b.WriteString("\nWords:\n")
	for _, w := range input.Words {
		b.WriteString(fmt.Sprintf("- %s (%s): %s\n", w.Simplified, w.Pinyin, w.PrimaryDefinition()))
	}

	b.WriteString(`
Instructions:
Create study material for these words:
1. Write 2-4 short dialogues that use as many of the words as possible. Each line needs the simplified Chinese, pinyin with tone marks, and an English translation, plus a one-phrase context.
2. List 2-4 grammar points the dialogues illustrate, each with a short example.
3. Write 2-4 practice exercises (fill-in-the-blank or translation) solvable with only these words.
Keep all sentences at the stated HSK level.`)

	return b.String()
}

const dialogueSystemPrompt = `You are an experienced Chinese language teacher writing practice dialogues for English-speaking learners. Use only the given vocabulary plus very common function words.`

func buildDialogueUserMessage(input DialogueInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Situation: %s\n", input.Situation))
	b.WriteString(fmt.Sprintf("Exchanges: %d\n", input.Exchanges))

	b.WriteString("\nVocabulary:\n")
	for _, w := range input.Words {
		b.WriteString(fmt.Sprintf("- %s (%s): %s\n", w.Simplified, w.Pinyin, w.PrimaryDefinition()))
	}

	b.WriteString(`
Instructions:
Write a natural two-person dialogue for the situation above with the requested number of exchanges. Every line needs the simplified Chinese, pinyin with tone marks, an English translation, and the speaker as context. Work in as much of the vocabulary as fits naturally.`)

	return b.String()
}
