package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is one uploaded audio file and its optional transcript. The storage
// path is set once at creation and never changes.
type Video struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Path          string    `json:"path" db:"path"`
	Blake3Hash    string    `json:"blake3_hash,omitempty" db:"blake3_hash"`
	Transcription *string   `json:"transcription,omitempty" db:"transcription"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
