package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
)

func TestParseStructuredResponse(t *testing.T) {
	t.Parallel()

	type payload struct {
		Value string `json:"value"`
	}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain JSON",
			raw:  `{"value": "ok"}`,
			want: "ok",
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\t  {\"value\": \"ok\"}  \n",
			want: "ok",
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"value\": \"ok\"}\n```",
			want: "ok",
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"value\": \"ok\"}\n```",
			want: "ok",
		},
		{
			name: "fence with trailing whitespace",
			raw:  "```json\n{\"value\": \"ok\"}\n```\n\n",
			want: "ok",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out payload
			require.NoError(t, parseStructuredResponse(tt.raw, &out))
			assert.Equal(t, tt.want, out.Value)
		})
	}
}

func TestParseStructuredResponseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "   \n  "},
		{name: "fence only", raw: "```json\n```"},
		{name: "truncated JSON", raw: `{"value": "ok`},
		{name: "prose around JSON", raw: `Here is the result: {"value": "ok"}`},
		{name: "not JSON at all", raw: "I could not produce a classification."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out map[string]any
			err := parseStructuredResponse(tt.raw, &out)
			assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		})
	}
}
