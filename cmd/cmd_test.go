package cmd

import (
	"testing"

	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreviewAnswer_Choice(t *testing.T) {
	q := &problemgen.Question{Format: problemgen.FormatMultipleChoice, Choices: []string{"10", "12", "14", "9"}}

	a, err := parsePreviewAnswer(" 2 ", q)
	require.NoError(t, err)
	assert.Equal(t, "12", a.Choice)

	_, err = parsePreviewAnswer("5", q)
	assert.Error(t, err)
	_, err = parsePreviewAnswer("twelve", q)
	assert.Error(t, err)
}

func TestParsePreviewAnswer_Ordering(t *testing.T) {
	q := &problemgen.Question{Format: problemgen.FormatOrdering, Pieces: []string{"dog", "the", "runs"}}

	a, err := parsePreviewAnswer("2, 1 3", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "dog", "runs"}, a.Order)

	_, err = parsePreviewAnswer("2 1", q)
	assert.Error(t, err, "every piece must be placed")
	_, err = parsePreviewAnswer("2 2 1", q)
	assert.Error(t, err, "pieces cannot repeat")
}

func newSetCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "set"}
	for _, f := range intFlags {
		c.Flags().Int(f.name, 0, f.usage)
	}
	c.Flags().StringSlice("topics", nil, "")
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestPatchFromFlags_OnlyChangedFields(t *testing.T) {
	p, err := patchFromFlags(newSetCmd(t, "--count", "15", "--penalty", "0"))
	require.NoError(t, err)
	require.NotNil(t, p.QuestionCount)
	require.NotNil(t, p.NegativePoints)
	assert.Equal(t, 15, *p.QuestionCount)
	assert.Equal(t, 0, *p.NegativePoints)
	assert.Nil(t, p.TimePerQuestion)
	assert.Nil(t, p.EnabledTopics)
}

func TestPatchFromFlags_Topics(t *testing.T) {
	p, err := patchFromFlags(newSetCmd(t, "--topics", problemgen.AllTopics[0]))
	require.NoError(t, err)
	require.NotNil(t, p.EnabledTopics)
	assert.Equal(t, []string{problemgen.AllTopics[0]}, *p.EnabledTopics)

	p, err = patchFromFlags(newSetCmd(t, "--topics", "all"))
	require.NoError(t, err)
	require.NotNil(t, p.EnabledTopics)
	assert.Empty(t, *p.EnabledTopics)

	_, err = patchFromFlags(newSetCmd(t, "--topics", "astrology"))
	assert.Error(t, err)
}

func TestPatchFromFlags_NothingSet(t *testing.T) {
	_, err := patchFromFlags(newSetCmd(t))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "asha", truncate("asha", 20))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestCostTable(t *testing.T) {
	out := costTable([]store.LLMModelUsage{
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 1_000_000, OutputTokens: 0},
		{Model: "home-brew-7b", Calls: 1, InputTokens: 10, OutputTokens: 10},
	}).String()

	assert.Contains(t, out, "$0.15")
	assert.Contains(t, out, "TOTAL (partial: no price for home-brew-7b)")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
