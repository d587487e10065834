package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the settlement collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	paymentAttempts     *prometheus.CounterVec
	confirmDuration     *prometheus.HistogramVec
	insufficientBalance *prometheus.CounterVec
	ledgerRequests      *prometheus.CounterVec
	reconciled          *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		paymentAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_payment_attempts_total",
			Help: "Payment attempts by currency and outcome.",
		}, []string{"currency", "outcome"}),
		confirmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "settlement_confirm_duration_seconds",
			Help:    "Time from submission to a terminal confirmation status.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"status"}),
		insufficientBalance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_insufficient_balance_total",
			Help: "Payments rejected before submission for lack of funds.",
		}, []string{"currency"}),
		ledgerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_ledger_requests_total",
			Help: "Ledger RPC calls by method and result.",
		}, []string{"method", "result"}),
		reconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_reconciled_total",
			Help: "Unsettled records resolved by the reconciler.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: []float64{0.1, 0.3, 0.5, 1.0, 2.0, 5.0, 30.0},
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.paymentAttempts,
		m.confirmDuration,
		m.insufficientBalance,
		m.ledgerRequests,
		m.reconciled,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// PaymentAttempt counts one executor outcome.
func (m *Metrics) PaymentAttempt(currency, outcome string) {
	if m == nil {
		return
	}
	m.paymentAttempts.WithLabelValues(currency, outcome).Inc()
}

// ConfirmDuration observes how long confirmation took.
func (m *Metrics) ConfirmDuration(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.confirmDuration.WithLabelValues(status).Observe(d.Seconds())
}

// InsufficientBalance counts attempts rejected by the balance check.
func (m *Metrics) InsufficientBalance(currency string) {
	if m == nil {
		return
	}
	m.insufficientBalance.WithLabelValues(currency).Inc()
}

// LedgerRequest counts one RPC call by method and result.
func (m *Metrics) LedgerRequest(method string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ledgerRequests.WithLabelValues(method, result).Inc()
}

// Reconciled counts records resolved by the reconciler.
func (m *Metrics) Reconciled(status string) {
	if m == nil {
		return
	}
	m.reconciled.WithLabelValues(status).Inc()
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if m == nil || path == "" {
			return
		}
		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
