package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderComposition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		entry Entry
		title string
		body  string
	}{
		{
			name:  "word only",
			entry: Entry{Word: "犬"},
			title: "犬",
			body:  "",
		},
		{
			name:  "reading and meaning",
			entry: Entry{Word: "犬", Reading: "いぬ", Meaning: "dog"},
			title: "犬",
			body:  "いぬ — dog",
		},
		{
			name:  "meaning and codes without reading",
			entry: Entry{Word: "犬", Meaning: "dog", Codes: "N5"},
			title: "犬",
			body:  "dog (N5)",
		},
		{
			name:  "reading only",
			entry: Entry{Word: "犬", Reading: "いぬ"},
			title: "犬",
			body:  "いぬ",
		},
		{
			name:  "codes only",
			entry: Entry{Word: "犬", Codes: "N5,L12"},
			title: "犬",
			body:  " (N5,L12)",
		},
		{
			name:  "all fields",
			entry: Entry{Word: "猫", Reading: "neko", Meaning: "cat", Codes: "N5"},
			title: "猫",
			body:  "neko — cat (N5)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			title, body := tt.entry.Render()
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.body, body)
		})
	}
}
