package inventory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/inventory"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// Operaciones del motor (etiqueta "operation" en métricas).
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// DefaultActor responsable usado cuando no hay usuario autenticado ni se envía uno.
const DefaultActor = "Admin"

// MovementUseCase registra, revisa y retracta movimientos de inventario.
// Cada operación corre en una única transacción con bloqueo de fila (SELECT FOR UPDATE)
// sobre los productos afectados: stock y movimiento se escriben juntos o no se escriben.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	metrics      MovementMetrics
	now          func() time.Time
}

// NewMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, metrics MovementMetrics) *MovementUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &MovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Create aplica un movimiento nuevo: bloquea el producto, ajusta stock y guarda el movimiento.
// actor es el nombre del usuario autenticado (responsable por defecto).
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest, actor string) (*dto.MovementResponse, error) {
	productID := strings.TrimSpace(in.ProductRef())
	if productID == "" || !entity.IsValidMovementType(in.Type) || in.Quantity < 1 {
		uc.observe(OperationCreate, in.Type, domain.ErrInvalidInput)
		return nil, domain.ErrInvalidInput
	}
	if !isValidID(productID) {
		uc.observe(OperationCreate, in.Type, domain.ErrProductNotFound)
		return nil, domain.ErrProductNotFound
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    orDefault(in.Reason, entity.DefaultMovementReason),
		User:      orDefault(in.Actor(), orDefault(actor, DefaultActor)),
		Date:      now,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		stock, err := inventory.Apply(product.Stock, mov.Type, mov.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, stock); err != nil {
			return err
		}
		mov.ProductName = product.Name
		mov.ProductDescription = product.Description
		return movRepo.Create(ctx, mov)
	})
	uc.observe(OperationCreate, mov.Type, err)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// Update revisa un movimiento existente: revierte su efecto y aplica los valores nuevos.
// Si cambia el producto, bloquea ambos en orden ascendente de id.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	if !isValidID(id) {
		uc.observe(OperationUpdate, "", domain.ErrMovementNotFound)
		return nil, domain.ErrMovementNotFound
	}

	var updated *entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		current, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrMovementNotFound
		}
		next, err := revised(*current, in)
		if err != nil {
			return err
		}

		if next.ProductID == current.ProductID {
			product, err := productRepo.GetForUpdate(ctx, current.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			stock, err := inventory.Revise(product.Stock, current.Type, current.Quantity, next.Type, next.Quantity)
			if err != nil {
				return err
			}
			if stock != product.Stock {
				if err := productRepo.UpdateStock(ctx, product.ID, stock); err != nil {
					return err
				}
			}
			next.ProductName = product.Name
			next.ProductDescription = product.Description
		} else {
			locked, err := lockProducts(ctx, productRepo, current.ProductID, next.ProductID)
			if err != nil {
				return err
			}
			oldProduct, newProduct := locked[current.ProductID], locked[next.ProductID]
			oldStock, err := inventory.Reverse(oldProduct.Stock, current.Type, current.Quantity)
			if err != nil {
				return err
			}
			newStock, err := inventory.Apply(newProduct.Stock, next.Type, next.Quantity)
			if err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, oldProduct.ID, oldStock); err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, newProduct.ID, newStock); err != nil {
				return err
			}
			next.ProductName = newProduct.Name
			next.ProductDescription = newProduct.Description
		}

		next.UpdatedAt = uc.now()
		if err := movRepo.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	movementType := ""
	if updated != nil {
		movementType = updated.Type
	}
	uc.observe(OperationUpdate, movementType, err)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated), nil
}

// Delete retracta un movimiento: revierte su efecto sobre el producto y lo elimina.
// Si el producto ya no existe, solo elimina el movimiento.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		uc.observe(OperationDelete, "", domain.ErrMovementNotFound)
		return domain.ErrMovementNotFound
	}

	movementType := ""
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		mov, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovementNotFound
		}
		movementType = mov.Type
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			stock, err := inventory.Reverse(product.Stock, mov.Type, mov.Quantity)
			if err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, product.ID, stock); err != nil {
				return err
			}
		}
		return movRepo.Delete(ctx, mov.ID)
	})
	uc.observe(OperationDelete, movementType, err)
	return err
}

// GetByID obtiene un movimiento con los datos de su producto.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	if !isValidID(id) {
		return nil, domain.ErrMovementNotFound
	}
	mov, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovementNotFound
	}
	return toMovementResponse(mov), nil
}

// List lista movimientos (más recientes primero) con paginación y filtros opcionales.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementListRequest) ([]dto.MovementResponse, *dto.Pagination, error) {
	in.DefaultPage()
	if in.Type != "" && !entity.IsValidMovementType(in.Type) {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.ProductID != "" && !isValidID(in.ProductID) {
		return nil, nil, domain.ErrInvalidInput
	}
	list, total, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		Limit:     in.Limit,
		Offset:    in.Offset(),
	})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, dto.NewPagination(in.PageRequest, total), nil
}

// revised aplica los campos enviados sobre una copia del movimiento original.
func revised(next entity.Movement, in dto.UpdateMovementRequest) (entity.Movement, error) {
	if ref := in.ProductRef(); ref != nil {
		productID := strings.TrimSpace(*ref)
		if !isValidID(productID) {
			return next, domain.ErrProductNotFound
		}
		next.ProductID = productID
	}
	if in.Type != nil {
		next.Type = *in.Type
	}
	if in.Quantity != nil {
		next.Quantity = *in.Quantity
	}
	if in.Reason != nil {
		next.Reason = orDefault(*in.Reason, entity.DefaultMovementReason)
	}
	if actor := in.Actor(); actor != nil {
		next.User = orDefault(*actor, next.User)
	}
	if in.Notes != nil {
		next.Notes = strings.TrimSpace(*in.Notes)
	}
	if !entity.IsValidMovementType(next.Type) || next.Quantity < 1 {
		return next, domain.ErrInvalidInput
	}
	return next, nil
}

// lockProducts bloquea los productos en orden ascendente de id para evitar deadlocks.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, ids ...string) (map[string]*entity.Product, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	locked := make(map[string]*entity.Product, len(sorted))
	for _, id := range sorted {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		locked[id] = p
	}
	return locked, nil
}

func (uc *MovementUseCase) observe(operation, movementType string, err error) {
	uc.metrics.ObserveMovement(operation, movementType, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrMovementNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	}
	return "error"
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	out := &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		User:      m.User,
		Date:      m.Date,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ProductName != "" {
		out.Product = &dto.MovementProductRef{
			ID:          m.ProductID,
			Name:        m.ProductName,
			Description: m.ProductDescription,
		}
	}
	return out
}
