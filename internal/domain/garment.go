package domain

import (
	"fmt"
	"strings"
	"time"
)

type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
	AvailabilityPreOrder   Availability = "pre_order"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityOutOfStock, AvailabilityPreOrder:
		return true
	}
	return false
}

// Garment is a catalog product. Vendor and categories are stored lowercased,
// createdAt/updatedAt are managed by GORM.
type Garment struct {
	ID           uint64       `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"size:200;not null;index"`
	Description  string       `json:"description" gorm:"size:5000;not null"`
	Price        float64      `json:"price" gorm:"not null"`
	Size         string       `json:"size" gorm:"size:200;not null"`
	Availability Availability `json:"availability" gorm:"size:20;index"`
	Vendor       string       `json:"vendor" gorm:"size:120;index"`
	Categories   string       `json:"categories" gorm:"size:120;index"`
	Tags         []string     `json:"tags" gorm:"serializer:json"`
	Images       []string     `json:"images" gorm:"serializer:json"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Normalize fills defaults and lowercases vendor/categories before a write.
func (g *Garment) Normalize() {
	g.Name = strings.TrimSpace(g.Name)
	g.Vendor = strings.ToLower(strings.TrimSpace(g.Vendor))
	g.Categories = strings.ToLower(strings.TrimSpace(g.Categories))
	if g.Availability == "" {
		g.Availability = AvailabilityInStock
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	if g.Images == nil {
		g.Images = []string{}
	}
}

func (g *Garment) Validate() error {
	if n := len(g.Name); n < 2 || n > 200 {
		return fmt.Errorf("%w: name must be 2-200 characters", ErrValidation)
	}
	if n := len(g.Description); n < 1 || n > 5000 {
		return fmt.Errorf("%w: description must be 1-5000 characters", ErrValidation)
	}
	if g.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if n := len(g.Size); n < 1 || n > 200 {
		return fmt.Errorf("%w: size must be 1-200 characters", ErrValidation)
	}
	if !g.Availability.Valid() {
		return fmt.Errorf("%w: availability must be one of in_stock, out_of_stock, pre_order", ErrValidation)
	}
	if len(g.Vendor) > 120 {
		return fmt.Errorf("%w: vendor must not exceed 120 characters", ErrValidation)
	}
	if len(g.Categories) > 120 {
		return fmt.Errorf("%w: categories must not exceed 120 characters", ErrValidation)
	}
	return nil
}
