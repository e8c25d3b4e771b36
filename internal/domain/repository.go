package domain

import (
	"context"
)

// SafetyRepository defines the accident and crosswalk data source.
// The domain defines the interface; storage packages implement it.
type SafetyRepository interface {
	// ListAccidents returns accident records matching the query
	ListAccidents(ctx context.Context, q AccidentQuery) ([]AccidentRecord, error)

	// ListCrosswalks returns crosswalk facilities inside the bounds (all when zero)
	ListCrosswalks(ctx context.Context, b Bounds) ([]CrosswalkFacility, error)

	// Health checks data source connectivity
	Health(ctx context.Context) error
}
