// Package vocab holds the vocabulary data model and the directory loader.
//
// An Entry is one vocabulary item parsed from a tab-separated line:
//
//	word <TAB> reading <TAB> meaning <TAB> codes
//
// Only the word is required. Optional fields are stored as "" when absent;
// the loader trims whitespace and drops blank fields so "" always means
// "not present".
package vocab

import "strings"

// Entry is one immutable vocabulary item.
type Entry struct {
	Word    string
	Reading string
	Meaning string
	Codes   string
}

// Render formats the entry into a notification payload.
//
// Title is the word itself. The body composes, in order: the reading, then
// " — " plus the meaning (the separator only when a reading came first),
// then the reference codes in parentheses. Any subset of the optional
// fields composes without doubled separators.
func (e Entry) Render() (title, body string) {
	var b strings.Builder
	if e.Reading != "" {
		b.WriteString(e.Reading)
	}
	if e.Meaning != "" {
		if b.Len() > 0 {
			b.WriteString(" — ")
		}
		b.WriteString(e.Meaning)
	}
	if e.Codes != "" {
		b.WriteString(" (")
		b.WriteString(e.Codes)
		b.WriteString(")")
	}
	return e.Word, b.String()
}
