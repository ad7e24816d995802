package dto

import "time"

type AddVolumeInput struct {
	Title     string
	Series    string
	FilePath  string
	PageCount int
}

type UpdateProgressInput struct {
	VolumeID    string
	CurrentPage int
}

type VolumeOutput struct {
	ID                 string
	Title              string
	Series             string
	FilePath           string
	NotePath           string
	PageCount          int
	CurrentPage        int
	Completed          bool
	CompletedAt        *time.Time
	LastProgressUpdate *time.Time
}
