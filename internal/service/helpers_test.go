package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"vegetable-orders/internal/database"
	"vegetable-orders/internal/models"
	"vegetable-orders/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	images  *storage.ImageStore
	catalog *CatalogService
	orders  *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := database.OpenTest(t)
	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		db:      db,
		images:  images,
		catalog: NewCatalogService(db, images, log),
		orders:  NewOrderService(db, log),
	}
}

func (f *fixture) addVegetable(t *testing.T, name, price, stock string) *models.Vegetable {
	t.Helper()
	veg, err := f.catalog.Create(context.Background(), VegetableForm{Name: name, Price: price, Stock: stock})
	require.NoError(t, err)
	return veg
}

func (f *fixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	var veg models.Vegetable
	require.NoError(t, f.db.First(&veg, id).Error)
	return veg.Stock
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&n).Error)
	return n
}
