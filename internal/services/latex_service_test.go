package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAreStableAndComplete(t *testing.T) {
	s := &LatexService{}
	infos := s.Templates()
	require.Len(t, infos, 3)
	assert.Equal(t, "template-1", infos[0].ID)
	assert.Equal(t, "template-2", infos[1].ID)
	assert.Equal(t, "template-3", infos[2].ID)
	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
	}
}

func TestLoadTemplate(t *testing.T) {
	for id := range templateRegistry {
		content, err := loadTemplate(id)
		require.NoError(t, err)
		assert.Contains(t, content, `\documentclass`)
		assert.Contains(t, content, `\end{document}`)
	}

	_, err := loadTemplate("template-99")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestExtractLatex(t *testing.T) {
	doc := "\\documentclass{article}\n\\begin{document}\nhello\n\\end{document}"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare document passes through",
			raw:  doc,
			want: doc,
		},
		{
			name: "markdown fence is stripped",
			raw:  "```latex\n" + doc + "\n```",
			want: doc,
		},
		{
			name: "unlabeled fence is stripped",
			raw:  "```\n" + doc + "\n```",
			want: doc,
		},
		{
			name: "surrounding prose is trimmed",
			raw:  "Here is your resume:\n\n" + doc + "\n\nLet me know if you need changes.",
			want: doc,
		},
		{
			name: "missing end marker keeps the tail",
			raw:  "intro\n\\documentclass{article}\ntruncated",
			want: "\\documentclass{article}\ntruncated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLatex(tt.raw))
		})
	}
}

func TestStripJSONFences(t *testing.T) {
	want := `{"company_name":"Stripe"}`

	tests := []struct {
		name string
		raw  string
	}{
		{"bare json", want},
		{"json fence", "```json\n" + want + "\n```"},
		{"prose wrapper", "Sure, here you go: " + want + " hope that helps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, stripJSONFences(tt.raw))
		})
	}
}
