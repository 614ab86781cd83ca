package compensation

import "context"

type ComponentService interface {
	Create(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	Get(ctx context.Context, id string) (ComponentResponse, error)
	List(ctx context.Context, activeOnly bool) ([]ComponentResponse, error)
	Update(ctx context.Context, req UpdateComponentRequest) error
	Delete(ctx context.Context, id string) error
}
