// Package log contains output adapters for transmission progress.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/linecast/internal/domain"
)

// ProgressWriter writes one "[elapsed] record" line per sent record.
// It is safe for concurrent use.
type ProgressWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewProgressWriter creates a ProgressWriter writing to w.
func NewProgressWriter(w io.Writer) *ProgressWriter {
	return &ProgressWriter{w: w}
}

// OnProgress writes the formatted progress line.
// Write errors are dropped; progress output never affects a session.
func (p *ProgressWriter) OnProgress(pr domain.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, domain.FormatProgress(pr))
}
