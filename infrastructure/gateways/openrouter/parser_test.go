package openrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs_FiveBlocks(t *testing.T) {
	content := "Question: Q1 Answer: A1\n\n" +
		"Question: Q2 Answer: A2\n\n" +
		"Question: Q3 Answer: A3\n\n" +
		"Question: Q4 Answer: A4\n\n" +
		"Question: Q5 Answer: A5"

	pairs := ParsePairs(content)

	require.Len(t, pairs, 5)
	assert.Equal(t, "Q1", pairs[0].Question)
	assert.Equal(t, "A1", pairs[0].Answer)
	assert.Equal(t, "Q5", pairs[4].Question)
	assert.Equal(t, "A5", pairs[4].Answer)
}

func TestParsePairs_AnswerOnNextLine(t *testing.T) {
	content := "Question: What is the capital of France?\nAnswer: Paris"

	pairs := ParsePairs(content)

	require.Len(t, pairs, 1)
	assert.Equal(t, "What is the capital of France?", pairs[0].Question)
	assert.Equal(t, "Paris", pairs[0].Answer)
}

func TestParsePairs_MissingAnswerGetsDefault(t *testing.T) {
	content := "Question: What is entropy?"

	pairs := ParsePairs(content)

	require.Len(t, pairs, 1)
	assert.Equal(t, "What is entropy?", pairs[0].Question)
	assert.Equal(t, "Answer not provided", pairs[0].Answer)
}

func TestParsePairs_EmptyAnswerGetsDefault(t *testing.T) {
	content := "Question: What is entropy? Answer: "

	pairs := ParsePairs(content)

	require.Len(t, pairs, 1)
	assert.Equal(t, "Answer not provided", pairs[0].Answer)
}

func TestParsePairs_SkipsBlocksWithoutQuestionLabel(t *testing.T) {
	content := "Here are your flashcards:\n\nQuestion: Q1 Answer: A1\n\nHope that helps!"

	pairs := ParsePairs(content)

	require.Len(t, pairs, 1)
	assert.Equal(t, "Q1", pairs[0].Question)
}

func TestParsePairs_EmptyContent(t *testing.T) {
	assert.Empty(t, ParsePairs(""))
	assert.Empty(t, ParsePairs("   \n\n  "))
	assert.Empty(t, ParsePairs("no labels here at all"))
}

func TestFallbackPair_NamesTopic(t *testing.T) {
	pair := FallbackPair("quantum mechanics")

	assert.Equal(t, "What is an interesting fact about quantum mechanics?", pair.Question)
	assert.Contains(t, pair.Answer, "quantum mechanics")
}
