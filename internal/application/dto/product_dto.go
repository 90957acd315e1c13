package dto

import "time"

// CreateProductRequest entrada para crear un producto. Stock es el stock inicial.
type CreateProductRequest struct {
	Code         string `json:"code" validate:"required,min=1,max=50"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Description  string `json:"description" validate:"max=1000"`
	Area         string `json:"area" validate:"required,oneof=almacen quimicos mro"`
	Stock        int64  `json:"stock" validate:"min=0"`
	StockMinimum *int64 `json:"stock_minimum" validate:"omitempty,min=0"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock; se maneja vía movimientos).
type UpdateProductRequest struct {
	Code         *string `json:"code" validate:"omitempty,min=1,max=50"`
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	Area         *string `json:"area" validate:"omitempty,oneof=almacen quimicos mro"`
	StockMinimum *int64  `json:"stock_minimum" validate:"omitempty,min=0"`
	ClearMinimum bool    `json:"clear_stock_minimum"` // true = volver al mínimo por defecto
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	Area   string `query:"area" validate:"omitempty,oneof=almacen quimicos mro"`
	Search string `query:"q" validate:"max=100"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Area             string    `json:"area"`
	AreaLabel        string    `json:"area_label"`
	ImageURL         string    `json:"image_url,omitempty"`
	QRImageURL       string    `json:"qr_image_url,omitempty"`
	Stock            int64     `json:"stock"`
	InitialStock     int64     `json:"initial_stock"`
	StockMinimum     *int64    `json:"stock_minimum"`
	EffectiveMinimum int64     `json:"effective_minimum"`
	LowStock         bool      `json:"low_stock"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
