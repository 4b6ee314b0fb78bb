package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// KioskMetrics holds Prometheus metrics for the order wizard and finalization.
type KioskMetrics struct {
	// Wizard funnel
	WizardSteps   *prometheus.CounterVec
	OrdersStarted prometheus.Counter
	OrdersReset   prometheus.Counter

	// Finalization
	OrdersFinalized  prometheus.Counter
	FinalizeFailures prometheus.Counter
	OrderTotal       prometheus.Histogram
	OrderDeposit     prometheus.Histogram

	// Best-effort side effects
	MirrorFailures prometheus.Counter
	PrintFailures  prometheus.Counter
}

// NewKioskMetrics creates the kiosk metrics and registers them with reg.
func NewKioskMetrics(namespace string, reg prometheus.Registerer) *KioskMetrics {
	if namespace == "" {
		namespace = "cakekiosk"
	}

	subsystem := "orders"
	factory := promauto.With(reg)

	return &KioskMetrics{
		WizardSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "wizard_steps_total",
				Help:      "Wizard selections by step and outcome",
			},
			[]string{"step", "outcome"}, // outcome: ok, rejected
		),
		OrdersStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "started_total",
			Help:      "Orders started on the kiosk",
		}),
		OrdersReset: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reset_total",
			Help:      "Orders discarded before finalization",
		}),
		OrdersFinalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "finalized_total",
			Help:      "Orders persisted successfully",
		}),
		FinalizeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "finalize_failures_total",
			Help:      "Orders that could not be persisted",
		}),
		OrderTotal: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "total_amount",
			Help:      "Order total at finalization",
			Buckets:   []float64{250, 500, 750, 1000, 1500, 2000, 3000, 5000, 8000},
		}),
		OrderDeposit: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "deposit_amount",
			Help:      "Deposit requested at finalization",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000},
		}),
		MirrorFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mirror_failures_total",
			Help:      "Finalized orders that could not be mirrored to the remote system",
		}),
		PrintFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "print_failures_total",
			Help:      "Receipts that could not be printed",
		}),
	}
}

// Step records a wizard selection.
func (m *KioskMetrics) Step(step string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.WizardSteps.WithLabelValues(step, outcome).Inc()
}

// Finalized records a persisted order and its amounts.
func (m *KioskMetrics) Finalized(total, deposit decimal.Decimal) {
	m.OrdersFinalized.Inc()
	m.OrderTotal.Observe(total.InexactFloat64())
	m.OrderDeposit.Observe(deposit.InexactFloat64())
}
