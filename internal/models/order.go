package models

// OrderDateLayout is the layout of Order.OrderDate.
const OrderDateLayout = "2006-01-02 15:04:05"

// Order is immutable once inserted. EmployeeID and Name are copied from the
// order form and are not linked to users.
type Order struct {
	ID          uint   `gorm:"primaryKey"`
	EmployeeID  string `gorm:"size:50;not null"`
	Name        string `gorm:"size:100;not null"`
	VegetableID uint   `gorm:"index;not null"`
	Quantity    int    `gorm:"not null"`
	OrderDate   string `gorm:"size:100;not null"`
}

// OrderHistoryRow is an order joined with its vegetable. TotalPrice uses the
// vegetable's current price.
type OrderHistoryRow struct {
	ID            uint
	EmployeeID    string
	EmployeeName  string
	VegetableID   uint
	VegetableName string
	Quantity      int
	TotalPrice    int
	OrderDate     string
}
