package entity

import "time"

// Area agrupa productos para filtros y reportes.
type Area string

const (
	AreaAlmacen  Area = "almacen"
	AreaQuimicos Area = "quimicos"
	AreaMRO      Area = "mro"
)

// DefaultStockMinimum umbral de bajo stock cuando el producto no define uno.
const DefaultStockMinimum int64 = 5

// Areas lista las áreas válidas en orden de presentación.
func Areas() []Area {
	return []Area{AreaAlmacen, AreaQuimicos, AreaMRO}
}

// Valid indica si el área es una de las conocidas.
func (a Area) Valid() bool {
	switch a {
	case AreaAlmacen, AreaQuimicos, AreaMRO:
		return true
	}
	return false
}

// Label nombre legible del área (reportes y exportaciones).
func (a Area) Label() string {
	switch a {
	case AreaAlmacen:
		return "Almacén"
	case AreaQuimicos:
		return "Químicos"
	case AreaMRO:
		return "MRO"
	}
	return string(a)
}

// Product representa un producto del inventario. Stock solo cambia a través del registro de movimientos;
// InitialStock es el stock con el que se creó y no cambia.
type Product struct {
	ID           string
	Code         string // único, en mayúsculas
	Name         string
	Description  string
	Area         Area
	ImageURL     string
	QRImageURL   string
	Stock        int64
	InitialStock int64
	StockMinimum *int64 // nil = sin definir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveStockMinimum devuelve el mínimo configurado o DefaultStockMinimum si no existe.
func (p *Product) EffectiveStockMinimum() int64 {
	if p.StockMinimum == nil {
		return DefaultStockMinimum
	}
	return *p.StockMinimum
}

// IsLowStock indica stock por debajo del mínimo efectivo.
func (p *Product) IsLowStock() bool {
	return p.Stock < p.EffectiveStockMinimum()
}
