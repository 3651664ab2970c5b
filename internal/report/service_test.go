package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/medistock/internal/inventory/store"
	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
	salesStore "github.com/MrJamesThe3rd/medistock/internal/sales/store"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

func newService(t *testing.T) (*report.Service, *inventory.Service, *sales.Service) {
	t.Helper()

	db, err := session.Open(t.TempDir(), nil)
	require.NoError(t, err)

	invSvc := inventory.NewService(inventoryStore.New(db))
	salesSvc := sales.NewService(salesStore.New(db))

	return report.NewService(invSvc, salesSvc), invSvc, salesSvc
}

func TestService_Summary(t *testing.T) {
	svc, invSvc, _ := newService(t)
	ctx := context.Background()

	got, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Summary{}, got)

	_, err = invSvc.Add(ctx, inventory.CreateParams{Name: "Paracetamol 500mg", Category: "Analgesic", Unit: "strip", Stock: 120})
	require.NoError(t, err)
	_, err = invSvc.Add(ctx, inventory.CreateParams{Name: "Amoxicillin 250mg", Category: "Antibiotic", Unit: "box", Stock: 80})
	require.NoError(t, err)

	got, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Summary{TotalItems: 2, TotalStock: 200}, got)
}

func TestService_DailySales(t *testing.T) {
	svc, _, salesSvc := newService(t)
	ctx := context.Background()

	ref := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := salesSvc.Append(ctx, sales.CreateParams{ItemName: "Paracetamol 500mg", Quantity: 5, Date: ref})
	require.NoError(t, err)
	_, err = salesSvc.Append(ctx, sales.CreateParams{ItemName: "Amoxicillin 250mg", Quantity: 3, Date: ref.AddDate(0, 0, -1)})
	require.NoError(t, err)

	got, err := svc.DailySales(ctx, ref, 7)
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, 3, got[5].Quantity)
	assert.Equal(t, 5, got[6].Quantity)
}
