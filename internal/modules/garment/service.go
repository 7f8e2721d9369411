package garment

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"wearhouse/internal/domain"
	"wearhouse/internal/pkg/response"
)

const (
	EventCreated = "garment.created"
	EventUpdated = "garment.updated"
	EventDeleted = "garment.deleted"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Service orchestrates garment CRUD and paginated search. Id format and
// pagination bounds are checked here, before any repository call; every
// method returns the uniform response envelope.
type Service struct {
	repo   GarmentRepositoryInterface
	events EventPublisher
}

func NewService(repo GarmentRepositoryInterface, events EventPublisher) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) AddGarment(ctx context.Context, req CreateGarmentRequest) *response.Response {
	g := &domain.Garment{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Size:         req.Size,
		Availability: domain.Availability(req.Availability),
		Vendor:       req.Vendor,
		Categories:   req.Categories,
		Tags:         req.Tags,
		Images:       req.Images,
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(err.Error())
		}
		log.Printf("garment.add error=%q", err)
		return response.InternalError("failed to create garment")
	}
	if created == nil {
		return response.InternalError("failed to create garment")
	}

	s.publish(EventCreated, created)
	return response.Created("garment created", GarmentData{Garment: *created})
}

func (s *Service) UpdateGarment(ctx context.Context, id string, req UpdateGarmentRequest) *response.Response {
	garmentID, ok := parseID(id)
	if !ok {
		return response.BadRequest("invalid garment id")
	}

	updated, err := s.repo.UpdateByID(ctx, garmentID, req.apply)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(err.Error())
		}
		log.Printf("garment.update id=%d error=%q", garmentID, err)
		return response.InternalError("failed to update garment")
	}
	if updated == nil {
		return response.NotFound("garment not found")
	}

	s.publish(EventUpdated, updated)
	return response.OK("garment updated", GarmentData{Garment: *updated})
}

func (s *Service) DeleteGarment(ctx context.Context, id string) *response.Response {
	garmentID, ok := parseID(id)
	if !ok {
		return response.BadRequest("invalid garment id")
	}

	deleted, err := s.repo.DeleteByID(ctx, garmentID)
	if err != nil {
		log.Printf("garment.delete id=%d error=%q", garmentID, err)
		return response.InternalError("failed to delete garment")
	}
	if deleted == nil {
		return response.NotFound("garment not found")
	}

	s.publish(EventDeleted, deleted)
	return response.OK("garment deleted", GarmentData{Garment: *deleted})
}

func (s *Service) GetGarmentByID(ctx context.Context, id string) *response.Response {
	garmentID, ok := parseID(id)
	if !ok {
		return response.BadRequest("invalid garment id")
	}

	g, err := s.repo.FindByID(ctx, garmentID)
	if err != nil {
		log.Printf("garment.get id=%d error=%q", garmentID, err)
		return response.InternalError("failed to load garment")
	}
	if g == nil {
		return response.NotFound("garment not found")
	}
	return response.OK("garment retrieved", GarmentData{Garment: *g})
}

func (s *Service) GetAllGarments(ctx context.Context, page, limit int) *response.Response {
	if page < 1 || limit < 1 {
		return response.BadRequest("page and limit must be positive integers")
	}

	result, err := s.repo.FindWithPagination(ctx, nil, page, limit)
	if err != nil {
		log.Printf("garment.list page=%d limit=%d error=%q", page, limit, err)
		return response.InternalError("failed to list garments")
	}
	return response.OK("garments retrieved", ListData{
		Garments:   result.Docs,
		Pagination: result.Pagination,
	})
}

func (s *Service) SearchGarmentsByName(ctx context.Context, name string, page, limit int) *response.Response {
	if page < 1 || limit < 1 {
		return response.BadRequest("page and limit must be positive integers")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return response.BadRequest("search term is required")
	}

	result, err := s.repo.SearchWithPagination(ctx, "name", name, page, limit)
	if err != nil {
		log.Printf("garment.search term=%q error=%q", name, err)
		return response.InternalError("failed to search garments")
	}
	return response.OK("garments retrieved", SearchData{
		Garments:   result.Docs,
		Pagination: result.Pagination,
		SearchTerm: name,
	})
}

// AppendImages attaches uploaded image paths to a garment.
func (s *Service) AppendImages(ctx context.Context, id string, paths []string) *response.Response {
	garmentID, ok := parseID(id)
	if !ok {
		return response.BadRequest("invalid garment id")
	}
	if len(paths) == 0 {
		return response.BadRequest("no images provided")
	}

	updated, err := s.repo.UpdateByID(ctx, garmentID, func(g *domain.Garment) {
		g.Images = append(g.Images, paths...)
	})
	if err != nil {
		log.Printf("garment.images id=%d error=%q", garmentID, err)
		return response.InternalError("failed to attach images")
	}
	if updated == nil {
		return response.NotFound("garment not found")
	}

	s.publish(EventUpdated, updated)
	return response.OK("images attached", GarmentData{Garment: *updated})
}

func (s *Service) publish(action string, g *domain.Garment) {
	if s.events != nil {
		s.events.Publish(action, g)
	}
}

func parseID(id string) (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}
