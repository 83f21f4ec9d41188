package app

import "errors"

var (
	// ErrInvalidInput covers bad caller input (empty query, zero user id).
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction marks an unreadable or unsupported file. Recovered per
	// file during indexing: the file is skipped, the run continues.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmbedding marks an embedding model failure. Fatal for the current
	// indexing run or query.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStore marks the persistence layer being unavailable. Fatal for the
	// calling operation; never silently degraded to empty results.
	ErrStore = errors.New("store unavailable")

	// ErrLLM marks a chat completion failure (network, auth, bad response).
	ErrLLM = errors.New("llm call failed")

	// ErrNoHistory is returned by Summarize when the user has no history yet.
	ErrNoHistory = errors.New("no history for user")

	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
)
