package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock solo se fija al crear; después se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto. La categoría debe existir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, description := strings.TrimSpace(in.Name), strings.TrimSpace(in.Description)
	if name == "" || description == "" || in.Price.IsNegative() || in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		CategoryID:   category.ID,
		Price:        in.Price,
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		Barcode:      strings.TrimSpace(in.Barcode),
		Supplier:     strings.TrimSpace(in.Supplier),
		Active:       in.Active == nil || *in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
		CategoryName: category.Name,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, productError(err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID con su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if product.Name == "" || product.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.category(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.CategoryName = category.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Supplier != nil {
		product.Supplier = strings.TrimSpace(*in.Supplier)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, productError(err)
	}
	return toProductResponse(product), nil
}

// List lista productos (más recientes primero) con búsqueda, filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) ([]dto.ProductResponse, *dto.Pagination, error) {
	in.DefaultPage()
	if in.CategoryID != "" && !isValidID(in.CategoryID) {
		return nil, nil, domain.ErrInvalidInput
	}
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		LowStock:   in.LowStock,
		Active:     in.Active,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, dto.NewPagination(in.PageRequest, total), nil
}

// Delete elimina un producto por ID. Sus movimientos se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, product.ID)
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	if !isValidID(id) {
		return nil, domain.ErrProductNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) category(ctx context.Context, id string) (*entity.Category, error) {
	if !isValidID(id) {
		return nil, domain.ErrInvalidCategory
	}
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidCategory
	}
	return category, nil
}

func productError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return domain.ErrBarcodeTaken
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrInvalidCategory
	}
	return err
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    dto.CategoryRef{ID: p.CategoryID, Name: p.CategoryName},
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Barcode:     p.Barcode,
		Supplier:    p.Supplier,
		Active:      p.Active,
		IsLowStock:  p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
