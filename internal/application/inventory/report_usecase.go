package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// ReportUseCase genera el reporte de entradas/salidas por producto y sus exportaciones.
// Las consultas filtran por ventana y área en la base de datos; la agregación es pura.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	exporters    map[string]ReportExporter
	loc          *time.Location
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. Los exportadores se indexan por su extensión (xlsx, pdf).
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	loc *time.Location,
	exporters ...ReportExporter,
) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	byExt := make(map[string]ReportExporter, len(exporters))
	for _, e := range exporters {
		byExt[e.Extension()] = e
	}
	return &ReportUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		exporters:    byExt,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// Generate calcula el reporte para los filtros dados.
func (uc *ReportUseCase) Generate(ctx context.Context, in dto.InventoryReportRequest) (*dto.InventoryReportResponse, error) {
	report, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	return toReportResponse(report, in.Seq), nil
}

// Export genera el reporte y lo vuelca al formato pedido (xlsx o pdf).
func (uc *ReportUseCase) Export(ctx context.Context, in dto.InventoryReportRequest, format string) (*ExportFile, error) {
	exporter, ok := uc.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	report, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	generatedAt := uc.now().In(uc.loc)
	table := domaininv.BuildExportTable(report, generatedAt)
	content, err := exporter.Export(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", exporter.Extension(), err)
	}
	return &ExportFile{
		Filename:    domaininv.ExportFilename(generatedAt, exporter.Extension()),
		ContentType: exporter.ContentType(),
		Content:     content,
		Rows:        len(table.Rows),
	}, nil
}

func (uc *ReportUseCase) build(ctx context.Context, in dto.InventoryReportRequest) (domaininv.Report, error) {
	window, area, filter, err := uc.parse(in)
	if err != nil {
		return domaininv.Report{}, err
	}

	products, err := uc.productRepo.List(ctx, repository.ProductFilter{Area: area})
	if err != nil {
		return domaininv.Report{}, domain.Persistence("list products", err)
	}
	movements, err := uc.movementRepo.ListInWindow(ctx, window.Start, window.End, area)
	if err != nil {
		return domaininv.Report{}, domain.Persistence("list movements", err)
	}

	return domaininv.Aggregate(domaininv.AggregateInput{
		Products:  products,
		Movements: movements,
		Window:    window,
		Area:      area,
		Filter:    filter,
	}), nil
}

func (uc *ReportUseCase) parse(in dto.InventoryReportRequest) (domaininv.Window, entity.Area, domaininv.StatusFilter, error) {
	var zero domaininv.Window
	r, err := domaininv.ParseRange(in.Range)
	if err != nil {
		return zero, "", "", err
	}
	filter, err := domaininv.ParseStatusFilter(in.Status)
	if err != nil {
		return zero, "", "", err
	}
	area, err := ParseArea(in.Area)
	if err != nil {
		return zero, "", "", err
	}

	ref := uc.now()
	if in.Ref != "" {
		if ref, err = ParseDate(in.Ref, uc.loc); err != nil {
			return zero, "", "", err
		}
	}
	var start, end *time.Time
	if in.Start != "" {
		t, err := ParseDate(in.Start, uc.loc)
		if err != nil {
			return zero, "", "", err
		}
		start = &t
	}
	if in.End != "" {
		t, err := ParseDate(in.End, uc.loc)
		if err != nil {
			return zero, "", "", err
		}
		end = &t
	}
	window, err := domaininv.ResolveWindow(r, ref, uc.loc, start, end)
	if err != nil {
		return zero, "", "", err
	}
	return window, area, filter, nil
}

// ParseArea vacío o "todos" = sin filtro.
func ParseArea(s string) (entity.Area, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "todos" {
		return "", nil
	}
	a := entity.Area(s)
	if !a.Valid() {
		return "", domain.ErrInvalidInput
	}
	return a, nil
}

func toReportResponse(r domaininv.Report, seq string) *dto.InventoryReportResponse {
	rows := make([]dto.ReportRowDTO, 0, len(r.Rows))
	for _, row := range r.Rows {
		p := row.Product
		rows = append(rows, dto.ReportRowDTO{
			ProductID:        p.ID,
			Name:             p.Name,
			Code:             p.Code,
			Area:             string(p.Area),
			AreaLabel:        p.Area.Label(),
			Stock:            p.Stock,
			StockMinimum:     p.StockMinimum,
			EffectiveMinimum: p.EffectiveStockMinimum(),
			Entries:          row.Entries,
			Exits:            row.Exits,
			Difference:       row.Difference,
			MovementCount:    row.MovementCount,
			Status:           string(row.Status),
			StatusLabel:      row.Status.Label(),
		})
	}
	return &dto.InventoryReportResponse{
		Range:  string(r.Window.Range),
		Start:  r.Window.Start,
		End:    r.Window.End,
		Area:   string(r.Area),
		Status: string(r.Filter),
		Rows:   rows,
		Totals: dto.ReportTotalsDTO{
			Products:   len(rows),
			LowStock:   r.Totals.LowStock,
			Entries:    r.Totals.Entries,
			Exits:      r.Totals.Exits,
			Difference: r.Totals.Difference,
		},
		OrphanMovements: r.OrphanMovements,
		RequestSeq:      seq,
	}
}
