package usecase

import "context"

// URLAvailability answers whether a candidate unique card URL can be claimed.
// The session treats the answer as opaque and never caches it.
type URLAvailability interface {
	IsAvailable(ctx context.Context, slug string) (bool, error)
}
