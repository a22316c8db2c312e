// Package storage provides the output sink for generated datasets. It
// defines the Sink interface (port) with implementations for local disk
// and local disk mirrored to S3.
package storage

import (
	"context"
	"io"
)

// Sink persists one dataset artifact under a relative path such as
// "noncry_00007.wav" or "events/beep/beep_003.wav".
type Sink interface {
	// Put writes data at relPath below the sink root, creating parent
	// directories as needed.
	Put(ctx context.Context, relPath string, data io.Reader) error
}
