package repository

import (
	"gorm.io/gorm"

	"wearhouse/internal/domain"
)

// GarmentRepository binds the generic repository to the garment table.
type GarmentRepository struct {
	*Repository[domain.Garment]
}

func NewGarmentRepository(db *gorm.DB) *GarmentRepository {
	return &GarmentRepository{Repository: New[domain.Garment](db)}
}
