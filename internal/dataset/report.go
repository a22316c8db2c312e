// Package dataset provides the batch drivers that turn the synthesis
// and transcoding building blocks into labeled dataset files on disk.
package dataset

import (
	"github.com/crysense/soundforge/internal/mix"
)

// ItemStatus is the outcome of one batch item.
type ItemStatus string

const (
	// StatusCompleted means the item was written successfully.
	StatusCompleted ItemStatus = "COMPLETED"
	// StatusSkipped means the item already existed and was left as-is.
	StatusSkipped ItemStatus = "SKIPPED"
	// StatusFailed means the item could not be produced; the batch
	// continues with the next item.
	StatusFailed ItemStatus = "FAILED"
)

// Item records the outcome of one batch item. Expected per-file
// conditions are values here, not interruptive errors.
type Item struct {
	// Index is the batch position of the item.
	Index int `json:"index"`
	// Path is the output path relative to the sink root.
	Path string `json:"path"`
	// Source is the input file for standardization items, empty for
	// synthesized items.
	Source string `json:"source,omitempty"`
	// Status is the item outcome.
	Status ItemStatus `json:"status"`
	// Placements lists the events mixed into a synthesized item.
	Placements []mix.Placement `json:"placements,omitempty"`
	// Error holds the failure reason for failed items.
	Error string `json:"error,omitempty"`
}

// Report collects per-item outcomes for one batch run.
type Report struct {
	Items []Item `json:"items"`
}

// Add appends one item outcome.
func (r *Report) Add(item Item) {
	r.Items = append(r.Items, item)
}

// Completed returns the number of successfully written items.
func (r *Report) Completed() int {
	return r.count(StatusCompleted)
}

// Skipped returns the number of items left untouched.
func (r *Report) Skipped() int {
	return r.count(StatusSkipped)
}

// Failed returns the number of failed items.
func (r *Report) Failed() int {
	return r.count(StatusFailed)
}

func (r *Report) count(status ItemStatus) int {
	n := 0
	for _, item := range r.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}
