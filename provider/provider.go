// Package provider defines the AI generation backends and the prompts they send.
package provider

import "github.com/holiy930561/LenDon"

// Generator is the interface for AI generation backends.
// This is an alias to the main package interface for convenience.
type Generator = lendon.Generator

// GenerationRequest is an alias to the main package type.
type GenerationRequest = lendon.GenerationRequest

// GenerationResult is an alias to the main package type.
type GenerationResult = lendon.GenerationResult
