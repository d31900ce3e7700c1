package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrPostNotFound indicates no post matched the requested id or slug
	ErrPostNotFound = errors.New("post not found")

	// ErrEmptyPost indicates neither a title nor content could be resolved
	// from the submitted payload
	ErrEmptyPost = errors.New("title and content are required")

	// ErrCredentialNotFound indicates the requested credential does not exist
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrInvalidCredentials indicates authentication failed
	ErrInvalidCredentials = errors.New("invalid credentials")
)
