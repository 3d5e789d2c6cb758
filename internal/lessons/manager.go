package lessons

import "github.com/david1005910/hanyu/internal/vocab"

// Manager slices a vocabulary into fixed-size lessons and tracks which
// words have been studied.
type Manager struct {
	vocabulary []vocab.Word
	learned    map[string]struct{}
}

// NewManager creates a manager over the given vocabulary. Lesson order
// follows vocabulary order.
func NewManager(vocabulary []vocab.Word) *Manager {
	return &Manager{
		vocabulary: vocabulary,
		learned:    make(map[string]struct{}),
	}
}

// WordsFor returns the words of lesson number n (0-based). A lesson
// past the end of the vocabulary is empty; the last lesson may be
// short.
func (m *Manager) WordsFor(n, wordsPerLesson int) []vocab.Word {
	if n < 0 || wordsPerLesson <= 0 {
		return nil
	}
	start := n * wordsPerLesson
	if start >= len(m.vocabulary) {
		return nil
	}
	end := start + wordsPerLesson
	if end > len(m.vocabulary) {
		end = len(m.vocabulary)
	}
	return m.vocabulary[start:end]
}

// LessonCount returns how many lessons the vocabulary yields at the
// given lesson size.
func (m *Manager) LessonCount(wordsPerLesson int) int {
	if wordsPerLesson <= 0 {
		return 0
	}
	return (len(m.vocabulary) + wordsPerLesson - 1) / wordsPerLesson
}

// MarkLearned records a word as studied. Unknown words are recorded
// too; progress is measured against the loaded vocabulary only.
func (m *Manager) MarkLearned(simplified string) {
	m.learned[simplified] = struct{}{}
}

// LearnedCount returns how many distinct words have been marked.
func (m *Manager) LearnedCount() int {
	return len(m.learned)
}

// Progress returns the fraction of the vocabulary marked learned, in
// [0, 1]. An empty vocabulary has zero progress.
func (m *Manager) Progress() float64 {
	if len(m.vocabulary) == 0 {
		return 0
	}
	n := 0
	for _, w := range m.vocabulary {
		if _, ok := m.learned[w.Simplified]; ok {
			n++
		}
	}
	return float64(n) / float64(len(m.vocabulary))
}
