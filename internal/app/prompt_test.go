package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	names := map[uint]string{1: "guide.md", 2: "notes.txt"}
	resolve := func(id uint) (string, error) { return names[id], nil }

	retrieved := []RetrievedChunk{
		{DocumentID: 1, Content: "alpha"},
		{DocumentID: 2, Content: "beta"},
		{DocumentID: 1, Content: "gamma"},
	}

	prompt, sources, err := BuildPrompt("what is alpha?", retrieved, resolve)
	require.NoError(t, err)

	// sources deduplicated in first-occurrence order
	assert.Equal(t, []string{"guide.md", "notes.txt"}, sources)

	assert.True(t, strings.HasPrefix(prompt, promptHeader))
	assert.Contains(t, prompt, "Source: guide.md\nalpha")
	assert.Contains(t, prompt, "Source: notes.txt\nbeta")
	assert.Contains(t, prompt, "Source: guide.md\ngamma")
	assert.True(t, strings.HasSuffix(prompt, "User question: what is alpha?\nAnswer:"))

	// chunk text ordering follows retrieval ranking
	assert.Less(t, strings.Index(prompt, "alpha"), strings.Index(prompt, "beta"))
	assert.Less(t, strings.Index(prompt, "beta"), strings.Index(prompt, "gamma"))
}

func TestBuildPromptMissingName(t *testing.T) {
	resolve := func(uint) (string, error) { return "", nil }

	prompt, sources, err := BuildPrompt("q", []RetrievedChunk{{DocumentID: 7, Content: "x"}}, resolve)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc_7"}, sources)
	assert.Contains(t, prompt, "Source: doc_7")
}

func TestBuildPromptResolveError(t *testing.T) {
	resolve := func(uint) (string, error) { return "", errors.New("db down") }

	_, _, err := BuildPrompt("q", []RetrievedChunk{{DocumentID: 1, Content: "x"}}, resolve)
	assert.ErrorIs(t, err, ErrStore)
}

func TestBuildPromptEmptyRetrieval(t *testing.T) {
	prompt, sources, err := BuildPrompt("q", nil, func(uint) (string, error) { return "", nil })
	require.NoError(t, err)
	assert.Empty(t, sources)
	assert.Contains(t, prompt, "User question: q")
}
