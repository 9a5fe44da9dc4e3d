package repository

import "context"

// DistanceCache stores distances resolved by the routing provider.
type DistanceCache interface {
	Get(ctx context.Context, origin, destination string) (km int, ok bool, err error)
	Put(ctx context.Context, origin, destination string, km int) error
}
