package database

import (
	"fmt"
	"log/slog"
	"time"

	"vegetable-orders/internal/config"
	"vegetable-orders/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to the database, migrates the schema and seeds the default
// users. The caller owns the returned handle.
func Open(driver, dsn string, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             500 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	var db *gorm.DB
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", "driver", driver, "attempt", i, "max_attempts", maxAttempts)

		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}

		log.Warn("failed to connect to database", "error", err)
		if driver == config.DriverSQLite {
			// a local file either opens or it doesn't
			break
		}
		time.Sleep(retryBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedDefaultUsers(db, log); err != nil {
		return nil, err
	}

	log.Info("database ready", "driver", driver)
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates missing tables and columns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vegetable{},
		&models.Order{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// one producer so the catalog has an owner, one employee for the demo
var defaultUsers = []models.User{
	{EmployeeID: "P001", Name: "Default Producer", Role: models.RoleProducer},
	{EmployeeID: "E001", Name: "Default Employee", Role: models.RoleEmployee},
}

// SeedDefaultUsers inserts the default users that are not there yet.
func SeedDefaultUsers(db *gorm.DB, log *slog.Logger) error {
	for _, u := range defaultUsers {
		var count int64
		if err := db.Model(&models.User{}).
			Where("employee_id = ?", u.EmployeeID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check seed user %s: %w", u.EmployeeID, err)
		}
		if count > 0 {
			continue
		}

		user := u
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create seed user %s: %w", u.EmployeeID, err)
		}
		log.Info("created seed user", "employee_id", user.EmployeeID, "role", user.Role)
	}
	return nil
}
