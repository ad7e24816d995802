package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// Volume is one item in the reading vault: catalog metadata (page count)
// plus the reading log fields the goal engine consumes.
type Volume struct {
	ID                 string
	Title              string
	Series             string
	Slug               string
	FilePath           string
	PageCount          int
	CurrentPage        int
	Completed          bool
	CompletedAt        *time.Time
	LastProgressUpdate *time.Time
	AddedAt            time.Time
	UpdatedAt          time.Time
}

func (v Volume) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(v.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	return nil
}

type VolumeDocument struct {
	Volume Volume
	Body   string
}
