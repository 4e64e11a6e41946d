package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// StyleMode values accepted for outline generation.
const (
	StyleConcise  = "concise"
	StyleDetailed = "detailed"
	StyleCustom   = "custom"
)

// Slide status lifecycle: pending -> generating -> completed | error.
// Any state may re-enter generating via an explicit regenerate.
const (
	SlidePending    = "pending"
	SlideGenerating = "generating"
	SlideCompleted  = "completed"
	SlideError      = "error"
)

type Project struct {
	ID            uuid.UUID
	Title         string
	SourceContent string
	StyleMode     string
	CustomPrompt  sql.NullString
	SlideCount    int
	Locale        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Slides        []Slide
}

type Slide struct {
	ID                uuid.UUID
	ProjectID         uuid.UUID
	PageNumber        int
	Title             string
	Content           string
	ImagePrompt       string
	ImageURL          sql.NullString
	ReferenceImageURL sql.NullString
	Status            string
	CreatedAt         time.Time
}

func ValidStyleMode(mode string) bool {
	switch mode {
	case StyleConcise, StyleDetailed, StyleCustom:
		return true
	}
	return false
}

func ValidSlideStatus(status string) bool {
	switch status {
	case SlidePending, SlideGenerating, SlideCompleted, SlideError:
		return true
	}
	return false
}
