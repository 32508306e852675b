package domain

import "time"

// Receipt records a successfully completed step so unchanged work can be
// skipped on the next run.
type Receipt struct {
	StepName  string    `json:"step_name,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
