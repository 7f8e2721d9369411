package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Filter is a column -> value equality match passed straight to GORM.
type Filter map[string]any

// PageMeta describes the position of one page inside a filtered result set.
type PageMeta struct {
	TotalDocs   int64 `json:"totalDocs"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
}

// Page is one page of results plus its pagination metadata. Computed fresh on
// every query, never persisted.
type Page[T any] struct {
	Docs       []T
	Pagination PageMeta
}

type normalizer interface{ Normalize() }
type validator interface{ Validate() error }

// Repository is an entity-agnostic data access layer over one table. Domain
// repositories hold one by value instead of extending a base type.
//
// Absence is a value here, not an error: lookups return (nil, nil) when no row
// matches. The repository trusts its inputs — pagination bounds are the
// service layer's job.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func (r *Repository[T]) DB() *gorm.DB { return r.db }

func (r *Repository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if n, ok := any(entity).(normalizer); ok {
		n.Normalize()
	}
	if v, ok := any(entity).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindOne returns the first match under the optional sort order, or nil.
func (r *Repository[T]) FindOne(ctx context.Context, filter Filter, sort string) (*T, error) {
	tx := applyFilter(r.db.WithContext(ctx), filter)
	if sort != "" {
		tx = tx.Order(sort)
	}
	var m T
	err := tx.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAll returns every match. Order is unspecified.
func (r *Repository[T]) FindAll(ctx context.Context, filter Filter) ([]T, error) {
	var items []T
	if err := applyFilter(r.db.WithContext(ctx), filter).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateByID loads the entity, applies merge to it, re-validates the merged
// state and saves. A failed validation writes nothing. Returns nil when the
// id does not exist. Last write wins under concurrent updates.
func (r *Repository[T]) UpdateByID(ctx context.Context, id uint64, merge func(*T)) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	merge(&m)
	if n, ok := any(&m).(normalizer); ok {
		n.Normalize()
	}
	if v, ok := any(&m).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteByID removes the row and returns its prior value, or nil if absent.
func (r *Repository[T]) DeleteByID(ctx context.Context, id uint64) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	tx := r.db.WithContext(ctx)
	if len(filter) == 0 {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		tx = tx.Where(map[string]any(filter))
	}
	res := tx.Delete(new(T))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// FindWithPagination fetches the page slice and the total count concurrently.
// The two reads are independent queries: under concurrent writes the metadata
// may be drawn from a slightly different instant than the docs.
func (r *Repository[T]) FindWithPagination(ctx context.Context, filter Filter, page, limit int) (*Page[T], error) {
	where := func(tx *gorm.DB) *gorm.DB {
		return applyFilter(tx, filter)
	}
	return r.findPage(ctx, where, page, limit)
}

// SearchWithPagination matches rows whose field contains value,
// case-insensitively. LIKE metacharacters in value are escaped, so a caller
// supplied "%" matches a literal percent sign. field is a trusted column name
// chosen by the service layer, never user input.
func (r *Repository[T]) SearchWithPagination(ctx context.Context, field, value string, page, limit int) (*Page[T], error) {
	pattern := "%" + escapeLike(strings.ToLower(value)) + "%"
	where := func(tx *gorm.DB) *gorm.DB {
		return tx.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", field), pattern)
	}
	return r.findPage(ctx, where, page, limit)
}

func (r *Repository[T]) findPage(ctx context.Context, where func(*gorm.DB) *gorm.DB, page, limit int) (*Page[T], error) {
	skip := (page - 1) * limit

	var (
		docs  []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return where(r.db.WithContext(gctx).Model(new(T))).
			Offset(skip).
			Limit(limit).
			Find(&docs).Error
	})
	g.Go(func() error {
		return where(r.db.WithContext(gctx).Model(new(T))).
			Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	meta := PageMeta{
		TotalDocs:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if meta.HasNextPage {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPrevPage {
		prev := page - 1
		meta.PrevPage = &prev
	}

	if docs == nil {
		docs = []T{}
	}
	return &Page[T]{Docs: docs, Pagination: meta}, nil
}

func applyFilter(tx *gorm.DB, filter Filter) *gorm.DB {
	if len(filter) == 0 {
		return tx
	}
	return tx.Where(map[string]any(filter))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
