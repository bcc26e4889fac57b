package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripplanner/internal/llm"
)

func TestExtractJSON_CodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "json fenced block",
			response: "Here is the result:\n```json\n{\"destination\": \"Goa\"}\n```\nHope that helps!",
			want:     `{"destination": "Goa"}`,
		},
		{
			name:     "untagged fenced block",
			response: "```\n{\"budget\": 5000}\n```",
			want:     `{"budget": 5000}`,
		},
		{
			name:     "fenced array",
			response: "```json\n[1, 2, 3]\n```",
			want:     `[1, 2, 3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := llm.ExtractJSON(tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_RawObject(t *testing.T) {
	response := `Sure! The extracted intent is {"from": "Mumbai", "destination": "Goa", "budget": 5000} as requested.`

	got, err := llm.ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"from": "Mumbai", "destination": "Goa", "budget": 5000}`, got)
}

func TestExtractJSON_NestedBracesInsideStrings(t *testing.T) {
	response := `{"note": "braces } inside { strings", "nested": {"a": [1, {"b": 2}]}}`

	got, err := llm.ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, got)
}

func TestExtractJSON_SkipsNonJSONCodeBlock(t *testing.T) {
	response := "```python\nprint('hi')\n```\nresult: {\"ok\": true}"

	got, err := llm.ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, got)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := llm.ExtractJSON("I could not understand the request, sorry.")
	assert.Error(t, err)
}

func TestExtractJSON_UnbalancedObject(t *testing.T) {
	_, err := llm.ExtractJSON(`{"from": "Mumbai", "destination":`)
	assert.Error(t, err)
}
