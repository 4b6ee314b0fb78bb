package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/service/servicetest"
	"github.com/dukerupert/cakekiosk/internal/telemetry"
)

// Catalog ids of the sample data.
const (
	catBirthday int64 = 1
	catWedding  int64 = 2

	breadVanilla   int64 = 1
	breadChocolate int64 = 2

	shapeRound       int64 = 1
	shapeRectangular int64 = 2
	shapeHeart       int64 = 3
	shapeTiered      int64 = 5
)

func newTestController() (*OrderController, *servicetest.Catalog) {
	catalog := servicetest.NewCatalog()
	controller := NewOrderController(
		catalog,
		NewPricingEngine(catalog),
		NewDeliveryScheduler(catalog),
		slog.New(slog.DiscardHandler),
	)
	return controller, catalog
}

func newTestMetrics() *telemetry.KioskMetrics {
	return telemetry.NewKioskMetrics("test", prometheus.NewRegistry())
}

// chocolateCake builds a 20-people round chocolate birthday cake.
func chocolateCake(t *testing.T, c *OrderController) *domain.Order {
	t.Helper()
	ctx := context.Background()

	o := c.NewOrder()
	require.NoError(t, c.SelectSize(ctx, o, "20"))
	require.NoError(t, c.SelectCategory(ctx, o, catBirthday))
	require.NoError(t, c.SelectShape(ctx, o, shapeRound))
	require.NoError(t, c.SelectBread(ctx, o, breadChocolate))
	return o
}
