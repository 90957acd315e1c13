// Package metrics expone contadores Prometheus del libro de movimientos.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

var _ inventory.LedgerMetrics = (*LedgerMetrics)(nil)

// LedgerMetrics implementa inventory.LedgerMetrics. Un receptor nil no registra nada.
type LedgerMetrics struct {
	registered *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	risk       prometheus.Counter
	drift      prometheus.Counter
}

// NewLedgerMetrics registra los contadores en reg. Con reg nil devuelve métricas inertes.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	registered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movements_registered_total",
		Help: "Movimientos de inventario registrados.",
	}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movement_rejections_total",
		Help: "Movimientos rechazados por motivo.",
	}, []string{"reason"})
	risk := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_consistency_risk_total",
		Help: "Salidas que pasaron la validación previa pero perdieron la carrera contra otra escritura.",
	})
	drift := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_reconciliation_drift_total",
		Help: "Conciliaciones con diferencia entre stock almacenado y stock esperado.",
	})
	reg.MustRegister(registered, rejected, risk, drift)
	return &LedgerMetrics{registered: registered, rejected: rejected, risk: risk, drift: drift}
}

func (m *LedgerMetrics) MovementRegistered(t entity.MovementType) {
	if m == nil || m.registered == nil {
		return
	}
	m.registered.WithLabelValues(normalizeLabel(string(t))).Inc()
}

func (m *LedgerMetrics) MovementRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *LedgerMetrics) ConsistencyRisk() {
	if m == nil || m.risk == nil {
		return
	}
	m.risk.Inc()
}

func (m *LedgerMetrics) ReconciliationDrift() {
	if m == nil || m.drift == nil {
		return
	}
	m.drift.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
