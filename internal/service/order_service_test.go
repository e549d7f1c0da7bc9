package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vegetable-orders/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func order(qty string) OrderForm {
	return OrderForm{EmployeeID: "E001", EmployeeName: "Tanaka", Quantity: qty}
}

func TestPlaceOrder_DecrementsStockAndRecordsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	veg := f.addVegetable(t, "Carrot", "150", "10")

	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)
	f.orders.now = func() time.Time { return fixed }

	placed, err := f.orders.PlaceOrder(ctx, veg.ID, order("4"))
	require.NoError(t, err)

	assert.Equal(t, 6, f.stockOf(t, veg.ID))
	assert.Equal(t, veg.ID, placed.VegetableID)
	assert.Equal(t, 4, placed.Quantity)
	assert.Equal(t, "E001", placed.EmployeeID)
	assert.Equal(t, "Tanaka", placed.Name)
	assert.Equal(t, "2024-05-01 09:30:00", placed.OrderDate)
	assert.EqualValues(t, 1, f.orderCount(t))

	_, err = f.orders.PlaceOrder(ctx, veg.ID, order("7"))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 6, f.stockOf(t, veg.ID))
	assert.EqualValues(t, 1, f.orderCount(t))
}

func TestPlaceOrder_SellOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	veg := f.addVegetable(t, "Carrot", "150", "20")

	list, err := f.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 20, list[0].Stock)

	_, err = f.orders.PlaceOrder(ctx, veg.ID, order("20"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.stockOf(t, veg.ID))

	_, err = f.orders.PlaceOrder(ctx, veg.ID, order("1"))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, f.stockOf(t, veg.ID))
	assert.EqualValues(t, 1, f.orderCount(t))
}

func TestPlaceOrder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		form  OrderForm
		field string
	}{
		{"missing employee id", OrderForm{EmployeeName: "Tanaka", Quantity: "1"}, "employee_id"},
		{"missing employee name", OrderForm{EmployeeID: "E001", Quantity: "1"}, "employee_name"},
		{"missing quantity", OrderForm{EmployeeID: "E001", EmployeeName: "Tanaka"}, "quantity"},
		{"zero quantity", order("0"), "quantity"},
		{"negative quantity", order("-3"), "quantity"},
		{"fractional quantity", order("1.5"), "quantity"},
		{"text quantity", order("two"), "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			veg := f.addVegetable(t, "Radish", "100", "5")

			_, err := f.orders.PlaceOrder(context.Background(), veg.ID, tt.form)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 5, f.stockOf(t, veg.ID))
			assert.Zero(t, f.orderCount(t))
		})
	}
}

func TestPlaceOrder_UnknownVegetable(t *testing.T) {
	f := newFixture(t)

	// checked before the form
	_, err := f.orders.PlaceOrder(context.Background(), 99, OrderForm{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, f.orderCount(t))
}

func TestPlaceOrder_RollsBackStockWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	veg := f.addVegetable(t, "Eggplant", "70", "10")

	boom := errors.New("disk full")
	err := f.db.Callback().Create().Before("gorm:create").Register("test:fail_orders", func(db *gorm.DB) {
		if db.Statement.Table == "orders" {
			_ = db.AddError(boom)
		}
	})
	require.NoError(t, err)

	_, err = f.orders.PlaceOrder(context.Background(), veg.ID, order("3"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, f.stockOf(t, veg.ID))
	assert.Zero(t, f.orderCount(t))
}

func TestPlaceOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := newFixture(t)
	veg := f.addVegetable(t, "Cucumber", "50", "10")

	const workers = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orders.PlaceOrder(context.Background(), veg.ID, order("1"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, workers-10, rejected)
	assert.Equal(t, 0, f.stockOf(t, veg.ID))
	assert.EqualValues(t, 10, f.orderCount(t))
}

func TestHistory_UsesCurrentPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carrot := f.addVegetable(t, "Carrot", "150", "20")
	leek := f.addVegetable(t, "Leek", "90", "20")

	_, err := f.orders.PlaceOrder(ctx, carrot.ID, order("3"))
	require.NoError(t, err)
	_, err = f.orders.PlaceOrder(ctx, leek.ID, OrderForm{EmployeeID: "E002", EmployeeName: "Suzuki", Quantity: "2"})
	require.NoError(t, err)

	history, err := f.orders.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "Carrot", history[0].VegetableName)
	assert.Equal(t, "Tanaka", history[0].EmployeeName)
	assert.Equal(t, 3, history[0].Quantity)
	assert.Equal(t, 450, history[0].TotalPrice)
	assert.Equal(t, "Leek", history[1].VegetableName)
	assert.Equal(t, "E002", history[1].EmployeeID)
	assert.Equal(t, 180, history[1].TotalPrice)

	_, err = f.catalog.Update(ctx, carrot.ID, VegetableForm{Name: "Carrot", Price: "200", Stock: "17"})
	require.NoError(t, err)

	history, err = f.orders.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 600, history[0].TotalPrice)
}

func TestPlaceOrder_WritesAuditLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	veg := f.addVegetable(t, "Corn", "110", "4")

	placed, err := f.orders.PlaceOrder(ctx, veg.ID, order("2"))
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, f.db.Where("entity = ?", "order").First(&entry).Error)
	assert.Equal(t, placed.ID, entry.EntityID)
	assert.Equal(t, "place", entry.Action)
	assert.Equal(t, "E001", entry.Actor)
	assert.Contains(t, entry.Details, "Corn")
}
