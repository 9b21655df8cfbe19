package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for the pipeline failure taxonomy
var (
	ErrTagNormalization = goerr.NewTag("normalization")
	ErrTagGeneration    = goerr.NewTag("generation")
	ErrTagDispatch      = goerr.NewTag("dispatch")
)

// Sentinel errors for domain operations
var (
	// ErrMissingChannel means a trigger payload carried no resolvable
	// channel reference after all per-platform fallbacks.
	ErrMissingChannel = goerr.New("trigger payload missing channel reference", goerr.T(ErrTagNormalization))
)
