package garment

import (
	"wearhouse/internal/domain"
	"wearhouse/internal/repository"
)

type CreateGarmentRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=200"`
	Description  string   `json:"description" binding:"required,min=1,max=5000"`
	Price        float64  `json:"price" binding:"gte=0"`
	Size         string   `json:"size" binding:"required,min=1,max=200"`
	Availability string   `json:"availability" binding:"omitempty,oneof=in_stock out_of_stock pre_order"`
	Vendor       string   `json:"vendor" binding:"omitempty,max=120"`
	Categories   string   `json:"categories" binding:"omitempty,max=120"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
}

// UpdateGarmentRequest is a partial merge: only non-nil fields are applied to
// the stored garment, then the merged result is re-validated.
type UpdateGarmentRequest struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Size         *string   `json:"size"`
	Availability *string   `json:"availability"`
	Vendor       *string   `json:"vendor"`
	Categories   *string   `json:"categories"`
	Tags         *[]string `json:"tags"`
	Images       *[]string `json:"images"`
}

func (req UpdateGarmentRequest) apply(g *domain.Garment) {
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Price != nil {
		g.Price = *req.Price
	}
	if req.Size != nil {
		g.Size = *req.Size
	}
	if req.Availability != nil {
		g.Availability = domain.Availability(*req.Availability)
	}
	if req.Vendor != nil {
		g.Vendor = *req.Vendor
	}
	if req.Categories != nil {
		g.Categories = *req.Categories
	}
	if req.Tags != nil {
		g.Tags = *req.Tags
	}
	if req.Images != nil {
		g.Images = *req.Images
	}
}

type GarmentData struct {
	Garment domain.Garment `json:"garment"`
}

type ListData struct {
	Garments   []domain.Garment    `json:"garments"`
	Pagination repository.PageMeta `json:"pagination"`
}

type SearchData struct {
	Garments   []domain.Garment    `json:"garments"`
	Pagination repository.PageMeta `json:"pagination"`
	SearchTerm string              `json:"searchTerm"`
}
