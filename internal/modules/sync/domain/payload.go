package domain

import (
	"encoding/json"
	"time"
)

// Section carries one remote dataset copy with the timestamp it was last
// written on the remote side.
type Section struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CompletionsSection carries remotely observed completion timestamps as
// raw strings; unparseable entries lose during the merge instead of
// failing it.
type CompletionsSection struct {
	Data      map[string]string `json:"data"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Payload is the sync exchange format. Every section is optional.
type Payload struct {
	Settings    *Section            `json:"settings,omitempty"`
	GoalsData   *Section            `json:"goals_data,omitempty"`
	Snapshots   *Section            `json:"snapshots,omitempty"`
	Completions *CompletionsSection `json:"completions,omitempty"`
}
