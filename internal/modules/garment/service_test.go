package garment

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wearhouse/internal/database"
	"wearhouse/internal/domain"
	"wearhouse/internal/repository"
)

type eventSpy struct {
	mu      sync.Mutex
	actions []string
}

func (s *eventSpy) Publish(action string, _ *domain.Garment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}

func (s *eventSpy) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func newGarmentService(t *testing.T) (*Service, *eventSpy) {
	t.Helper()

	db := database.New(":memory:")
	require.NoError(t, db.Connect(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB().DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate())

	spy := &eventSpy{}
	return NewService(repository.NewGarmentRepository(db.DB()), spy), spy
}

func addGarment(t *testing.T, svc *Service, name string) domain.Garment {
	t.Helper()
	res := svc.AddGarment(context.Background(), CreateGarmentRequest{
		Name:        name,
		Description: "a test garment",
		Price:       49.90,
		Size:        "M",
		Vendor:      "Acme Textiles",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Message)
	return res.Data.(GarmentData).Garment
}

func TestAddGarment(t *testing.T) {
	svc, spy := newGarmentService(t)

	created := addGarment(t, svc, "Linen Shirt")
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.AvailabilityInStock, created.Availability)
	assert.Equal(t, "acme textiles", created.Vendor)
	assert.Equal(t, []string{EventCreated}, spy.seen())
}

func TestAddGarment_InvalidEntity(t *testing.T) {
	svc, spy := newGarmentService(t)

	res := svc.AddGarment(context.Background(), CreateGarmentRequest{
		Name:        "Linen Shirt",
		Description: "d",
		Price:       -5,
		Size:        "M",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, spy.seen())
}

func TestGetGarmentByID(t *testing.T) {
	svc, _ := newGarmentService(t)
	created := addGarment(t, svc, "Linen Shirt")

	res := svc.GetGarmentByID(context.Background(), "1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, created.Name, res.Data.(GarmentData).Garment.Name)

	res = svc.GetGarmentByID(context.Background(), "9999")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUpdateGarment(t *testing.T) {
	svc, spy := newGarmentService(t)
	created := addGarment(t, svc, "Linen Shirt")

	newPrice := 59.90
	res := svc.UpdateGarment(context.Background(), "1", UpdateGarmentRequest{Price: &newPrice})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Message)
	updated := res.Data.(GarmentData).Garment
	assert.Equal(t, newPrice, updated.Price)
	// untouched fields survive the partial merge
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Vendor, updated.Vendor)
	assert.Contains(t, spy.seen(), EventUpdated)
}

func TestUpdateGarment_InvalidMergeLeavesStoredValue(t *testing.T) {
	svc, _ := newGarmentService(t)
	created := addGarment(t, svc, "Linen Shirt")

	badPrice := -1.0
	res := svc.UpdateGarment(context.Background(), "1", UpdateGarmentRequest{Price: &badPrice})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	got := svc.GetGarmentByID(context.Background(), "1")
	require.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, created.Price, got.Data.(GarmentData).Garment.Price)
}

func TestUpdateGarment_NotFound(t *testing.T) {
	svc, _ := newGarmentService(t)

	name := "New Name"
	res := svc.UpdateGarment(context.Background(), "1234", UpdateGarmentRequest{Name: &name})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteGarment(t *testing.T) {
	svc, spy := newGarmentService(t)
	addGarment(t, svc, "Linen Shirt")

	res := svc.DeleteGarment(context.Background(), "1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, spy.seen(), EventDeleted)

	res = svc.GetGarmentByID(context.Background(), "1")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = svc.DeleteGarment(context.Background(), "1")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetAllGarments(t *testing.T) {
	svc, _ := newGarmentService(t)
	for _, name := range []string{"Shirt One", "Shirt Two", "Shirt Three"} {
		addGarment(t, svc, name)
	}

	res := svc.GetAllGarments(context.Background(), 1, 2)
	require.Equal(t, http.StatusOK, res.StatusCode)
	data := res.Data.(ListData)
	assert.Len(t, data.Garments, 2)
	assert.Equal(t, int64(3), data.Pagination.TotalDocs)
	assert.Equal(t, 2, data.Pagination.TotalPages)
	assert.True(t, data.Pagination.HasNextPage)
}

func TestSearchGarmentsByName(t *testing.T) {
	svc, _ := newGarmentService(t)
	addGarment(t, svc, "Denim Jacket")
	addGarment(t, svc, "denim jeans")
	addGarment(t, svc, "Silk Scarf")

	res := svc.SearchGarmentsByName(context.Background(), "  DENIM ", 1, 10)
	require.Equal(t, http.StatusOK, res.StatusCode)
	data := res.Data.(SearchData)
	assert.Len(t, data.Garments, 2)
	assert.Equal(t, "DENIM", data.SearchTerm)
	assert.Equal(t, int64(2), data.Pagination.TotalDocs)
}

func TestAppendImages(t *testing.T) {
	svc, _ := newGarmentService(t)
	addGarment(t, svc, "Linen Shirt")

	res := svc.AppendImages(context.Background(), "1", []string{"/static/a.jpg", "/static/b.jpg"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"/static/a.jpg", "/static/b.jpg"}, res.Data.(GarmentData).Garment.Images)

	res = svc.AppendImages(context.Background(), "1", []string{"/static/c.jpg"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, res.Data.(GarmentData).Garment.Images, 3)

	res = svc.AppendImages(context.Background(), "1", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// mockGarmentRepo asserts that invalid input is rejected before any data
// access happens. No expectations are registered, so any call fails the test.
type mockGarmentRepo struct {
	mock.Mock
}

func (m *mockGarmentRepo) Create(ctx context.Context, g *domain.Garment) (*domain.Garment, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(*domain.Garment), args.Error(1)
}

func (m *mockGarmentRepo) FindByID(ctx context.Context, id uint64) (*domain.Garment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Garment), args.Error(1)
}

func (m *mockGarmentRepo) UpdateByID(ctx context.Context, id uint64, merge func(*domain.Garment)) (*domain.Garment, error) {
	args := m.Called(ctx, id, merge)
	return args.Get(0).(*domain.Garment), args.Error(1)
}

func (m *mockGarmentRepo) DeleteByID(ctx context.Context, id uint64) (*domain.Garment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Garment), args.Error(1)
}

func (m *mockGarmentRepo) FindWithPagination(ctx context.Context, filter repository.Filter, page, limit int) (*repository.Page[domain.Garment], error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).(*repository.Page[domain.Garment]), args.Error(1)
}

func (m *mockGarmentRepo) SearchWithPagination(ctx context.Context, field, value string, page, limit int) (*repository.Page[domain.Garment], error) {
	args := m.Called(ctx, field, value, page, limit)
	return args.Get(0).(*repository.Page[domain.Garment]), args.Error(1)
}

func TestInvalidIDRejectedBeforeDataAccess(t *testing.T) {
	repo := &mockGarmentRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	for _, id := range []string{"", "abc", "0", "-1", "1.5", "1e3"} {
		assert.Equal(t, http.StatusBadRequest, svc.GetGarmentByID(ctx, id).StatusCode, "id %q", id)
		assert.Equal(t, http.StatusBadRequest, svc.DeleteGarment(ctx, id).StatusCode, "id %q", id)
		assert.Equal(t, http.StatusBadRequest, svc.UpdateGarment(ctx, id, UpdateGarmentRequest{}).StatusCode, "id %q", id)
	}
	repo.AssertNotCalled(t, "FindByID")
	repo.AssertNotCalled(t, "DeleteByID")
	repo.AssertNotCalled(t, "UpdateByID")
}

func TestPaginationBoundsRejectedBeforeDataAccess(t *testing.T) {
	repo := &mockGarmentRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	for _, bounds := range [][2]int{{0, 10}, {-1, 10}, {1, 0}, {1, -5}} {
		page, limit := bounds[0], bounds[1]
		assert.Equal(t, http.StatusBadRequest, svc.GetAllGarments(ctx, page, limit).StatusCode)
		assert.Equal(t, http.StatusBadRequest, svc.SearchGarmentsByName(ctx, "shirt", page, limit).StatusCode)
	}
	assert.Equal(t, http.StatusBadRequest, svc.SearchGarmentsByName(ctx, "   ", 1, 10).StatusCode)

	repo.AssertNotCalled(t, "FindWithPagination")
	repo.AssertNotCalled(t, "SearchWithPagination")
}
