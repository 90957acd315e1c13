package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Contiene los KPIs de inventario del día y del mes en curso, más el stock por área.
type DashboardSummaryDTO struct {
	TotalProducts    int64 `json:"total_products"`
	LowStockProducts int64 `json:"low_stock_products"`

	// Mes en curso
	MonthEntries int64 `json:"month_entries"`
	MonthExits   int64 `json:"month_exits"`

	// Hoy
	TodayMovements int64 `json:"today_movements"`
	TodayEntries   int64 `json:"today_entries"`
	TodayExits     int64 `json:"today_exits"`

	StockByArea []AreaStockDTO `json:"stock_by_area"`

	// Últimos 7 días incluido hoy, del más antiguo al más reciente. Días sin movimientos en cero.
	MovementTrend []DailyMovementDTO `json:"movement_trend"`

	Area       string `json:"area,omitempty"`
	DateLabel  string `json:"date_label"` // ej: "Marzo 2025"
	RequestSeq string `json:"request_seq,omitempty"`
}

// AreaStockDTO barra del gráfico de stock por área.
type AreaStockDTO struct {
	Area     string `json:"area"`
	Label    string `json:"label"`
	Products int64  `json:"products"`
	Stock    int64  `json:"stock"`
}

// DailyMovementDTO barra del gráfico de tendencia de movimientos.
type DailyMovementDTO struct {
	Date    string `json:"date"`  // YYYY-MM-DD
	Label   string `json:"label"` // ej: "12 mar"
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
}
