package models

import "github.com/google/uuid"

// Prompt is a catalog entry: a reusable completion template containing the
// {transcription} placeholder.
type Prompt struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Template string    `json:"template" db:"template"`
}
