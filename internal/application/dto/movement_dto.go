package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// Acepta productoId o producto, y responsable o usuario.
type CreateMovementRequest struct {
	ProductID   string `json:"productoId"`
	Product     string `json:"producto"`
	Type        string `json:"tipo" validate:"required,oneof=entrada salida"`
	Quantity    int    `json:"cantidad" validate:"required,min=1"`
	Reason      string `json:"motivo" validate:"omitempty,max=100"`
	Responsible string `json:"responsable" validate:"omitempty,max=50"`
	User        string `json:"usuario" validate:"omitempty,max=50"`
	Notes       string `json:"notas" validate:"omitempty,max=500"`
}

// ProductRef devuelve el id del producto (productoId tiene prioridad).
func (r CreateMovementRequest) ProductRef() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	return r.Product
}

// Actor devuelve el responsable indicado (responsable tiene prioridad).
func (r CreateMovementRequest) Actor() string {
	if r.Responsible != "" {
		return r.Responsible
	}
	return r.User
}

// UpdateMovementRequest body para PUT /api/movements/:id.
// Campos ausentes conservan el valor original.
type UpdateMovementRequest struct {
	ProductID   *string `json:"productoId"`
	Product     *string `json:"producto"`
	Type        *string `json:"tipo" validate:"omitempty,oneof=entrada salida"`
	Quantity    *int    `json:"cantidad" validate:"omitempty,min=1"`
	Reason      *string `json:"motivo" validate:"omitempty,max=100"`
	Responsible *string `json:"responsable" validate:"omitempty,max=50"`
	User        *string `json:"usuario" validate:"omitempty,max=50"`
	Notes       *string `json:"notas" validate:"omitempty,max=500"`
}

// ProductRef devuelve el nuevo producto si se envió.
func (r UpdateMovementRequest) ProductRef() *string {
	if r.ProductID != nil && *r.ProductID != "" {
		return r.ProductID
	}
	if r.Product != nil && *r.Product != "" {
		return r.Product
	}
	return nil
}

// Actor devuelve el nuevo responsable si se envió.
func (r UpdateMovementRequest) Actor() *string {
	if r.Responsible != nil {
		return r.Responsible
	}
	return r.User
}

// MovementListRequest filtros de GET /api/movements.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"productoId"`
	Type      string `query:"tipo"`
}

// MovementProductRef producto embebido en la respuesta; nil si fue eliminado.
type MovementProductRef struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        string              `json:"id"`
	ProductID string              `json:"productoId"`
	Product   *MovementProductRef `json:"producto"`
	Type      string              `json:"tipo"`
	Quantity  int                 `json:"cantidad"`
	Reason    string              `json:"motivo"`
	User      string              `json:"usuario"`
	Date      time.Time           `json:"fecha"`
	Notes     string              `json:"notas,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
