package attendance

import "context"

// Store is the row-oriented attendance store. Appends are terminal:
// records are never updated or deleted once written. Reads return the
// fully materialized row set.
type Store interface {
	Append(ctx context.Context, records []Record) error
	All(ctx context.Context) ([]Record, error)
}
