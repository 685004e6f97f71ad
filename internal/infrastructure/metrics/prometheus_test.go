package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/metrics"
)

func TestCollector_CuentaVentasYAjustes(t *testing.T) {
	c := metrics.NewCollector()
	c.SaleObserved("kiosk", "committed", 3*time.Millisecond)
	c.SaleObserved("kiosk", "committed", 5*time.Millisecond)
	c.SaleObserved("cashier", "rejected", time.Millisecond)
	c.StockAdjusted("spoilage")

	n, err := testutil.GatherAndCount(c.Registry(), "cafe_pos_sales_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por canal/estado")
	n, err = testutil.GatherAndCount(c.Registry(), "cafe_pos_stock_adjustments_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_Handler(t *testing.T) {
	c := metrics.NewCollector()
	c.SaleObserved("", "failed", time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `cafe_pos_sales_total{channel="unknown",status="failed"} 1`)
}
