package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// cedictLine matches one CC-CEDICT entry:
//
//	TRADITIONAL SIMPLIFIED [pin1 yin1] /gloss/gloss/.../
var cedictLine = regexp.MustCompile(`^(\S+)\s+(\S+)\s+\[([^\]]+)\]\s+/(.+)/\s*$`)

// ParseCEDICT reads CC-CEDICT formatted dictionary data and returns up to
// limit words in file order. Comment lines and lines that don't match the
// entry format are skipped. limit <= 0 means no limit.
func ParseCEDICT(r io.Reader, limit int) ([]Word, error) {
	var words []Word
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		m := cedictLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		defs := strings.Split(m[4], "/")
		words = append(words, Word{
			Traditional: m[1],
			Simplified:  m[2],
			Pinyin:      m[3],
			Definitions: defs,
		})
		if limit > 0 && len(words) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return words, nil
}

// LoadCEDICT parses a CC-CEDICT file from disk.
func LoadCEDICT(path string, limit int) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer f.Close()
	return ParseCEDICT(f, limit)
}
