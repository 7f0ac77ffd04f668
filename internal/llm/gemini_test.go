package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(sentenceSetSchema().Definition)

	require.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"sentences"}, s.Required)

	list := s.Properties["sentences"]
	require.NotNil(t, list)
	assert.Equal(t, genai.TypeArray, list.Type)
	require.NotNil(t, list.MinItems)
	assert.EqualValues(t, 1, *list.MinItems)

	item := list.Items
	require.NotNil(t, item)
	assert.Equal(t, genai.TypeString, item.Properties["text"].Type)
	assert.Equal(t, genai.TypeInteger, item.Properties["grade"].Type)
	assert.Equal(t, []string{"spelling", "ordering"}, item.Properties["kind"].Enum)
	assert.ElementsMatch(t, []string{"text", "grade"}, item.Required)
}

func TestGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{"type": "null"}).Type)
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{}).Type)
}
