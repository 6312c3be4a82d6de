package config

import "errors"

var (
	// ErrInvalidBaseURL is returned when base_url is not an absolute http(s) URL
	ErrInvalidBaseURL = errors.New("base_url must be an absolute http(s) URL")
	// ErrEmptyOutputDir is returned when output_dir is empty
	ErrEmptyOutputDir = errors.New("output_dir cannot be empty")
	// ErrInvalidMaxResults is returned when max_results is outside 1..9999
	ErrInvalidMaxResults = errors.New("max_results must be between 1 and 9999")
	// ErrInvalidMaxAttempts is returned when max_attempts is not greater than 0
	ErrInvalidMaxAttempts = errors.New("max_attempts must be greater than 0")
	// ErrInvalidTimeout is returned when timeout is not greater than 0
	ErrInvalidTimeout = errors.New("timeout must be greater than 0")
	// ErrInvalidDelay is returned when a delay or backoff is negative
	ErrInvalidDelay = errors.New("delays must not be negative")
)
