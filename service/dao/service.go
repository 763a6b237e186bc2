package dao

import (
	"context"
)

// Service is a generic persistence contract for gate entities (change sets,
// review requests, decisions). K is the key type, T the entity type.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
