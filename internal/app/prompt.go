package app

import (
	"fmt"
	"strings"
)

const promptHeader = "You are given context snippets. " +
	"Use ONLY these to answer. If answer is not in context, say so clearly.\n\n"

// BuildPrompt assembles the grounded prompt: instructional header, one
// labelled block per retrieved chunk, then the literal question. The second
// return value is the source document names deduplicated in first-occurrence
// order; it feeds both the user-visible sources list and cache provenance.
func BuildPrompt(query string, retrieved []RetrievedChunk, resolveName func(uint) (string, error)) (string, []string, error) {
	var ctxParts []string
	var usedDocs []string
	seen := make(map[string]bool)

	for _, rc := range retrieved {
		name, err := resolveName(rc.DocumentID)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		if name == "" {
			name = fmt.Sprintf("doc_%d", rc.DocumentID)
		}
		ctxParts = append(ctxParts, fmt.Sprintf("---\nSource: %s\n%s\n", name, rc.Content))
		if !seen[name] {
			seen[name] = true
			usedDocs = append(usedDocs, name)
		}
	}

	prompt := fmt.Sprintf("%sContext:\n%s\n\nUser question: %s\nAnswer:",
		promptHeader, strings.Join(ctxParts, "\n"), query)
	return prompt, usedDocs, nil
}
