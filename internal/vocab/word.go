package vocab

import "strings"

// Word is a single vocabulary entry as supplied by the dictionary.
// The core treats words as read-only input; all mutable learning state
// lives in the store, keyed by the simplified form.
type Word struct {
	Simplified  string
	Traditional string
	Pinyin      string
	Definitions []string
}

// PrimaryDefinition returns the first gloss, or "" if none exist.
func (w Word) PrimaryDefinition() string {
	if len(w.Definitions) == 0 {
		return ""
	}
	return w.Definitions[0]
}

// JoinDefinitions renders the gloss list for storage and display.
func (w Word) JoinDefinitions() string {
	return strings.Join(w.Definitions, ", ")
}

// SplitDefinitions is the inverse of JoinDefinitions for rows read back
// from the store.
func SplitDefinitions(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}
