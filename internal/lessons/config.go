package lessons

// DefaultWordsPerLesson is how many vocabulary words one lesson covers.
const DefaultWordsPerLesson = 10

// Config holds lesson generation settings.
type Config struct {
	WordsPerLesson int
	MaxTokens      int
	Temperature    float64
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		WordsPerLesson: DefaultWordsPerLesson,
		MaxTokens:      1024,
		Temperature:    0.5,
	}
}
