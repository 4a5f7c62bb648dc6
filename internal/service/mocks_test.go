package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/crucial707/inventory/internal/models"
	"github.com/crucial707/inventory/internal/repo"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error) {
	args := m.Called(ctx, email, username)
	return args.Get(0).(models.User), args.Error(1)
}

// MockProductStore mocks the ProductStore interface
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) Create(ctx context.Context, product models.Product) (models.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductStore) GetByID(ctx context.Context, id string) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductStore) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) Update(ctx context.Context, product models.Product) (models.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memProducts is an in-memory ProductStore used by round-trip tests.
type memProducts struct {
	mu        sync.Mutex
	products  map[string]models.Product
	usernames map[string]string
}

func newMemProducts(usernames map[string]string) *memProducts {
	return &memProducts{products: map[string]models.Product{}, usernames: usernames}
}

func (s *memProducts) Create(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.products[p.ID] = p
	return p, nil
}

func (s *memProducts) GetByID(_ context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, repo.ErrNotFound
	}
	p.Owner.Username = s.usernames[p.Owner.ID]
	return p, nil
}

func (s *memProducts) List(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		p.Owner.Username = s.usernames[p.Owner.ID]
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memProducts) ListByOwner(_ context.Context, ownerID string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Owner.ID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProducts) Update(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ID]
	if !ok {
		return models.Product{}, repo.ErrNotFound
	}
	cur.Name, cur.Description, cur.Price, cur.Quantity, cur.UpdatedAt = p.Name, p.Description, p.Price, p.Quantity, p.UpdatedAt
	s.products[p.ID] = cur
	return cur, nil
}

func (s *memProducts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.products, id)
	return nil
}
