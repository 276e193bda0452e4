package ports

import (
	"context"

	"github.com/bft-labs/linecast/internal/domain"
)

// ReportRepository persists the summary of the most recent finished session.
type ReportRepository interface {
	// Load retrieves the last saved report.
	// Returns an empty report and nil error if none exists.
	Load(ctx context.Context) (domain.SessionReport, error)

	// Save persists the report atomically.
	Save(ctx context.Context, report domain.SessionReport) error
}
