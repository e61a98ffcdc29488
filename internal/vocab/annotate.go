package vocab

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Annotator fills in missing readings using morphological analysis
// of the word itself (IPA dictionary, katakana readings).
type Annotator struct {
	t *tokenizer.Tokenizer
}

// NewAnnotator loads the IPA dictionary. This is the expensive step;
// keep one Annotator for the process lifetime.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// Annotate returns a copy of entries where every entry without a reading
// gets one derived from its word. Entries whose reading cannot be derived
// are passed through unchanged.
func (a *Annotator) Annotate(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].Reading != "" {
			continue
		}
		if r := a.reading(out[i].Word); r != "" {
			out[i].Reading = r
		}
	}
	return out
}

// reading concatenates the per-token readings of text.
//
// Kagome IPA features:
//
//	6: base form, 7: reading, 8: pronunciation
func (a *Annotator) reading(text string) string {
	var b strings.Builder
	for _, tok := range a.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		features := tok.Features()
		if len(features) > 7 && features[7] != "*" {
			b.WriteString(features[7])
			continue
		}
		// Unknown token (e.g. latin script): no reading to contribute.
		return ""
	}
	return b.String()
}
