package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.PaymentAttempt("SOL", "SETTLED")
	m.PaymentAttempt("SOL", "SETTLED")
	m.PaymentAttempt("USDC", "FAILED")
	m.InsufficientBalance("SOL")
	m.LedgerRequest("getBalance", nil)
	m.LedgerRequest("getBalance", errors.New("down"))
	m.Reconciled("COMPLETED")
	m.ConfirmDuration("CONFIRMED", 3*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.paymentAttempts.WithLabelValues("SOL", "SETTLED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentAttempts.WithLabelValues("USDC", "FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.insufficientBalance.WithLabelValues("SOL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerRequests.WithLabelValues("getBalance", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerRequests.WithLabelValues("getBalance", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconciled.WithLabelValues("COMPLETED")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.PaymentAttempt("SOL", "SETTLED")
	m.ConfirmDuration("CONFIRMED", time.Second)
	m.InsufficientBalance("SOL")
	m.LedgerRequest("getBalance", nil)
	m.Reconciled("FAILED")

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetrics_Middleware(t *testing.T) {
	m := New(prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/agents/:agentId/wallet", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/agents/abc/wallet", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/agents/:agentId/wallet", "200")))
}
