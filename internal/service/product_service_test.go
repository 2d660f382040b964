package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func sampleFields() ProductFields {
	return ProductFields{
		Name:     "Widget",
		Quantity: 3,
		Price:    decimal.NewFromFloat(9.99),
		Category: "tools",
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)
	svc := NewProductService(repo, nil)

	product, err := svc.Create(ctx, sampleFields())
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 3, product.Quantity)
	assert.True(t, decimal.NewFromFloat(9.99).Equal(product.Price))
	assert.Equal(t, "tools", product.Category)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	products := []model.Product{
		{ID: uuid.New(), Name: "Widget", Quantity: 3, Category: "tools"},
		{ID: uuid.New(), Name: "Gadget", Quantity: 1, Category: "tools"},
	}
	repo.On("List", ctx).Return(products, nil)
	svc := NewProductService(repo, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		existing := &model.Product{ID: uuid.New(), Name: "Old", Quantity: 1, Category: "misc"}
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)
		svc := NewProductService(repo, nil)

		product, err := svc.Update(ctx, existing.ID, sampleFields())
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, existing.ID, product.ID)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)
		svc := NewProductService(repo, nil)

		_, err := svc.Update(ctx, id, sampleFields())
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockProductRepository)
		repo.On("Delete", ctx, id).Return(nil)
		svc := NewProductService(repo, nil)

		assert.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockProductRepository)
		repo.On("Delete", ctx, id).Return(gorm.ErrRecordNotFound)
		svc := NewProductService(repo, nil)

		assert.ErrorIs(t, svc.Delete(ctx, id), apperrors.ErrProductNotFound)
	})
}
