package garment

import (
	"context"

	"wearhouse/internal/domain"
	"wearhouse/internal/repository"
)

// GarmentRepositoryInterface — only the methods the garment service uses.
type GarmentRepositoryInterface interface {
	Create(ctx context.Context, g *domain.Garment) (*domain.Garment, error)
	FindByID(ctx context.Context, id uint64) (*domain.Garment, error)
	UpdateByID(ctx context.Context, id uint64, merge func(*domain.Garment)) (*domain.Garment, error)
	DeleteByID(ctx context.Context, id uint64) (*domain.Garment, error)
	FindWithPagination(ctx context.Context, filter repository.Filter, page, limit int) (*repository.Page[domain.Garment], error)
	SearchWithPagination(ctx context.Context, field, value string, page, limit int) (*repository.Page[domain.Garment], error)
}

// EventPublisher pushes catalog change events to connected feed clients.
// Implementations must not block the request path.
type EventPublisher interface {
	Publish(action string, g *domain.Garment)
}
