package vocab

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logx "vocabpop/pkg/logx"
)

// Load reads every regular file under dir and returns the parsed entries in
// directory order. Unreadable files are skipped (debug-logged), as are blank
// lines, comment lines (first non-space rune '#') and lines without a word.
//
// Parsing is best effort: a partially malformed file still contributes its
// good lines.
func Load(dir string, log logx.Logger) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("vocab: read dir %q: %w", dir, err)
	}

	var entries []Entry
	for _, it := range items {
		if it.IsDir() {
			continue
		}
		path := filepath.Join(dir, it.Name())
		parsed, err := parseFile(path)
		if err != nil {
			log.Debug("vocab file skipped", logx.String("path", path), logx.Err(err))
			continue
		}
		entries = append(entries, parsed...)
	}
	return entries, nil
}

func parseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if e, ok := parseLine(sc.Text()); ok {
			out = append(out, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseLine parses one tab-separated vocabulary line.
// Missing trailing fields are absent, not empty. Splitting happens on the
// raw line so a leading tab leaves the word field empty and the line is
// skipped, rather than promoting a later field to the word.
func parseLine(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false
	}

	parts := strings.Split(line, "\t")
	e := Entry{Word: strings.TrimSpace(parts[0])}
	if e.Word == "" {
		return Entry{}, false
	}
	if len(parts) > 1 {
		e.Reading = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		e.Meaning = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		e.Codes = strings.TrimSpace(parts[3])
	}
	return e, true
}
