package quizgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/david1005910/hanyu/internal/vocab"
)

const distractorCount = 3

// Generator builds quizzes from vocabulary. The random source is
// injected so question selection is reproducible under a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator over the given random source. A nil
// source gets a time-seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// AdaptiveQuiz produces up to count questions over the given words, one
// per word in order, with a question type drawn uniformly at random per
// word. Difficulty is derived from recentScores and only affects
// translation question points.
func (g *Generator) AdaptiveQuiz(words []vocab.Word, recentScores []float64, count int) []Question {
	difficulty := DifficultyFor(recentScores)

	n := count
	if len(words) < n {
		n = len(words)
	}

	questions := make([]Question, 0, n)
	for i, word := range words[:n] {
		id := fmt.Sprintf("q_%d", i)
		switch g.pickType() {
		case TypeTranslation:
			questions = append(questions, g.translationQuestion(id, word, words, difficulty))
		case TypeFillBlank:
			questions = append(questions, g.fillBlankQuestion(id, word))
		case TypePinyin:
			questions = append(questions, g.pinyinQuestion(id, word, words))
		}
	}
	return questions
}

func (g *Generator) pickType() QuestionType {
	types := []QuestionType{TypeTranslation, TypeFillBlank, TypePinyin}
	return types[g.rng.Intn(len(types))]
}

func (g *Generator) translationQuestion(id string, word vocab.Word, pool []vocab.Word, difficulty Difficulty) Question {
	correct := word.PrimaryDefinition()

	options := append([]string{correct}, g.distractors(word, pool, func(w vocab.Word) string {
		return w.PrimaryDefinition()
	})...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	points := 5
	if difficulty == DifficultyHard {
		points = 10
	}
	return Question{
		ID:          id,
		Type:        TypeTranslation,
		Prompt:      fmt.Sprintf("What does '%s' mean?", word.Simplified),
		Options:     options,
		Answer:      correct,
		Explanation: fmt.Sprintf("%s (%s) = %s", word.Simplified, word.Pinyin, correct),
		Points:      points,
	}
}

func (g *Generator) fillBlankQuestion(id string, word vocab.Word) Question {
	meaning := word.PrimaryDefinition()
	return Question{
		ID:          id,
		Type:        TypeFillBlank,
		Prompt:      fmt.Sprintf("How do you say '%s' in Chinese?", meaning),
		Answer:      word.Simplified,
		Explanation: fmt.Sprintf("%s = %s", meaning, word.Simplified),
		Points:      10,
	}
}

func (g *Generator) pinyinQuestion(id string, word vocab.Word, pool []vocab.Word) Question {
	options := append([]string{word.Pinyin}, g.distractors(word, pool, func(w vocab.Word) string {
		return w.Pinyin
	})...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		ID:          id,
		Type:        TypePinyin,
		Prompt:      fmt.Sprintf("What is the pinyin for '%s'?", word.Simplified),
		Options:     options,
		Answer:      word.Pinyin,
		Explanation: fmt.Sprintf("%s = %s", word.Simplified, word.Pinyin),
		Points:      5,
	}
}

// distractors draws up to three wrong options from the pool, excluding
// the target word, each projected through extract.
func (g *Generator) distractors(target vocab.Word, pool []vocab.Word, extract func(vocab.Word) string) []string {
	others := make([]vocab.Word, 0, len(pool))
	for _, w := range pool {
		if w.Simplified != target.Simplified {
			others = append(others, w)
		}
	}
	g.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	n := distractorCount
	if len(others) < n {
		n = len(others)
	}
	wrong := make([]string, 0, n)
	for _, w := range others[:n] {
		wrong = append(wrong, extract(w))
	}
	return wrong
}
