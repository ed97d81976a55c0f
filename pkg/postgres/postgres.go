package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartdomain "github.com/storelane/shopcore/internal/cart/domain"
	catalogdomain "github.com/storelane/shopcore/internal/catalog/domain"
	identitydomain "github.com/storelane/shopcore/internal/identity/domain"
	orderdomain "github.com/storelane/shopcore/internal/order/domain"
)

type Config struct {
	Host    string
	Port    int
	User    string
	Pass    string
	DB      string
	SSLMode string
}

func (c Config) dsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Pass, c.DB, c.SSLMode)
}

func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates the schema for every table the application
// owns. Foreign-key actions (cascade on order items, set-null on the
// order's customer and the item's product) come from the model tags.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&identitydomain.User{},
		&cartdomain.CartItem{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	)
}
