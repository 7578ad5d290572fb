package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics bundles the ledger's Prometheus instruments.
type Metrics struct {
	Provider *sdkmetric.MeterProvider
	Handler  http.Handler

	LoansCreated        prometheus.Counter
	PaymentsApplied     prometheus.Counter
	InstallmentsPaid    prometheus.Counter
	OverdueInstallments prometheus.Gauge
}

// InitMetrics wires the Prometheus exporter into an OpenTelemetry meter
// provider and registers the ledger counters.
func InitMetrics(namespace string) (*Metrics, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, fmt.Errorf("metrics exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return &Metrics{
		Provider: provider,
		Handler:  promhttp.Handler(),
		LoansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_created_total",
			Help:      "Loans created since process start.",
		}),
		PaymentsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_applied_total",
			Help:      "Cash payments applied to installments.",
		}),
		InstallmentsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installments_paid_total",
			Help:      "Installments settled in full.",
		}),
		OverdueInstallments: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_installments",
			Help:      "Unpaid installments past their due date, per last sweep.",
		}),
	}, nil
}
