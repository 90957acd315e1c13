package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/ports"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

const (
	qrPrefix = "BIN-"
	qrSize   = 256
)

// ProductConfig carpetas de la plataforma de imágenes.
type ProductConfig struct {
	ProductFolder string
	QRFolder      string
}

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía movimientos.
// storage y qr son opcionales: sin ellos el producto se crea sin imagen QR.
type ProductUseCase struct {
	repo    repository.ProductRepository
	storage ports.ImageStorage
	qr      ports.QRGenerator
	cfg     ProductConfig
	log     *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, storage ports.ImageStorage, qr ports.QRGenerator, cfg ProductConfig, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, storage: storage, qr: qr, cfg: cfg, log: log.Component("products")}
}

// Create crea un nuevo producto con su stock inicial. El código se normaliza a mayúsculas y debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := normalizeCode(in.Code)
	area := entity.Area(strings.ToLower(in.Area))
	if code == "" || strings.TrimSpace(in.Name) == "" || !area.Valid() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.StockMinimum != nil && *in.StockMinimum < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Area:         area,
		ImageURL:     in.ImageURL,
		Stock:        in.Stock,
		InitialStock: in.Stock,
		StockMinimum: in.StockMinimum,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	// El QR no bloquea el alta: el producto ya está guardado; si algo falla queda sin QR.
	if url, err := uc.uploadQR(ctx, product.Code); err != nil {
		uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("no se pudo generar el QR")
	} else if url != "" {
		if err := uc.repo.UpdateImages(ctx, product.ID, product.ImageURL, url); err != nil {
			uc.log.Warn().Err(err).Str("product_id", product.ID).Str("qr_url", url).Msg("no se pudo guardar la URL del QR")
		} else {
			product.QRImageURL = url
		}
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) uploadQR(ctx context.Context, code string) (string, error) {
	if uc.qr == nil || uc.storage == nil {
		return "", nil
	}
	png, err := uc.qr.PNG(qrPrefix+code, qrSize)
	if err != nil {
		return "", fmt.Errorf("generar QR: %w", err)
	}
	return uc.storage.Upload(ctx, uc.cfg.QRFolder, qrPrefix+code+".png", png)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != product.Code {
			other, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
			product.Code = code
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Area != nil {
		area := entity.Area(strings.ToLower(*in.Area))
		if !area.Valid() {
			return nil, domain.ErrInvalidInput
		}
		product.Area = area
	}
	switch {
	case in.ClearMinimum:
		product.StockMinimum = nil
	case in.StockMinimum != nil:
		if *in.StockMinimum < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockMinimum = in.StockMinimum
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UploadImage sube la foto del producto y guarda su URL.
func (uc *ProductUseCase) UploadImage(ctx context.Context, id, filename string, data []byte) (*dto.ProductResponse, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("almacenamiento de imágenes no configurado")
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	url, err := uc.storage.Upload(ctx, uc.cfg.ProductFolder, filename, data)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	if err := uc.repo.UpdateImages(ctx, product.ID, url, product.QRImageURL); err != nil {
		return nil, err
	}
	product.ImageURL = url
	return toProductResponse(product), nil
}

// List lista productos con filtro de área y búsqueda, paginado.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	area := entity.Area(strings.ToLower(in.Area))
	if area != "" && !area.Valid() {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.ProductFilter{Area: area, Search: strings.TrimSpace(in.Search), Limit: in.Limit, Offset: in.Offset}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un producto por ID. Sus movimientos quedan en el libro como huérfanos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Description:      p.Description,
		Area:             string(p.Area),
		AreaLabel:        p.Area.Label(),
		ImageURL:         p.ImageURL,
		QRImageURL:       p.QRImageURL,
		Stock:            p.Stock,
		InitialStock:     p.InitialStock,
		StockMinimum:     p.StockMinimum,
		EffectiveMinimum: p.EffectiveStockMinimum(),
		LowStock:         p.IsLowStock(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
