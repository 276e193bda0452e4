package ports

import "github.com/bft-labs/linecast/internal/domain"

// LineSource resolves file identifiers to record sequences.
type LineSource interface {
	// Load reads the identified file fully and splits it into records.
	// Returns domain.ErrNotFound or domain.ErrDecode on failure.
	Load(identifier string) (domain.RecordSequence, error)

	// List returns the selectable identifiers in directory order.
	// A missing root yields an empty list and nil error.
	List() ([]string, error)
}
