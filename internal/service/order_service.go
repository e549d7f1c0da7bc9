package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vegetable-orders/internal/database"
	"vegetable-orders/internal/models"

	"gorm.io/gorm"
)

// OrderForm carries the raw order form values.
type OrderForm struct {
	EmployeeID   string
	EmployeeName string
	Quantity     string
}

type orderFields struct {
	employeeID   string
	employeeName string
	quantity     int
}

func (f OrderForm) validate() (orderFields, error) {
	out := orderFields{
		employeeID:   strings.TrimSpace(f.EmployeeID),
		employeeName: strings.TrimSpace(f.EmployeeName),
	}
	if out.employeeID == "" {
		return out, newValidationError("employee_id", "is required")
	}
	if out.employeeName == "" {
		return out, newValidationError("employee_name", "is required")
	}
	qty, err := parsePositive("quantity", f.Quantity)
	if err != nil {
		return out, err
	}
	out.quantity = qty
	return out, nil
}

// OrderService places orders against the catalog and reads the ledger.
type OrderService struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time
}

func NewOrderService(db *gorm.DB, log *slog.Logger) *OrderService {
	return &OrderService{db: db, log: log, now: time.Now}
}

// PlaceOrder decrements the vegetable's stock and appends the order in one
// transaction. The decrement only applies while stock >= quantity, so stock
// never goes negative even when requests race.
func (s *OrderService) PlaceOrder(ctx context.Context, vegetableID uint, form OrderForm) (*models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		veg, err := findVegetable(tx, vegetableID)
		if err != nil {
			return err
		}

		fields, err := form.validate()
		if err != nil {
			return err
		}

		res := tx.Model(&models.Vegetable{}).
			Where("id = ? AND stock >= ?", veg.ID, fields.quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", fields.quantity))
		if res.Error != nil {
			return fmt.Errorf("decrement stock of vegetable %d: %w", veg.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		order = models.Order{
			EmployeeID:  fields.employeeID,
			Name:        fields.employeeName,
			VegetableID: veg.ID,
			Quantity:    fields.quantity,
			OrderDate:   s.now().Format(models.OrderDateLayout),
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return database.CreateAuditLog(tx, "order", order.ID, "place", order.EmployeeID,
			fmt.Sprintf("%d x %s (vegetable #%d)", order.Quantity, veg.Name, veg.ID))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		"order_id", order.ID,
		"vegetable_id", order.VegetableID,
		"employee_id", order.EmployeeID,
		"quantity", order.Quantity,
	)
	return &order, nil
}

// History returns every order whose vegetable still exists, oldest first.
// TotalPrice is computed from the vegetable's current price.
func (s *OrderService) History(ctx context.Context) ([]models.OrderHistoryRow, error) {
	var rows []models.OrderHistoryRow
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.employee_id, orders.name AS employee_name, " +
			"orders.vegetable_id, vegetables.name AS vegetable_name, orders.quantity, " +
			"vegetables.price * orders.quantity AS total_price, orders.order_date").
		Joins("JOIN vegetables ON vegetables.id = orders.vegetable_id").
		Order("orders.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	return rows, nil
}
