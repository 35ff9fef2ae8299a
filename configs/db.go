package configs

import (
	"fmt"
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// OpenDB opens the database selected by DB_DRIVER.
func OpenDB(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(source))
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// owners and restaurants reference each other
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
}

// sqliteDSN makes writers wait for the lock instead of failing with SQLITE_BUSY.
// BEGIN IMMEDIATE takes the write lock up front, so a read-then-write
// transaction never has to upgrade a shared lock.
func sqliteDSN(source string) string {
	var opts []string
	if !strings.Contains(source, "_busy_timeout") {
		opts = append(opts, "_busy_timeout=5000")
	}
	if !strings.Contains(source, "_txlock") {
		opts = append(opts, "_txlock=immediate")
	}
	if len(opts) == 0 {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + strings.Join(opts, "&")
}

func ConnectionDB(cfg *Config) error {
	database, err := OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	return nil
}

// Migrate creates or updates every table.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{}, &entity.Owner{}, &entity.DeliveryBoy{}, &entity.City{},
		&entity.Restaurant{}, &entity.Category{}, &entity.Item{},
		&entity.FavoriteRestaurant{}, &entity.FavoriteItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Review{}, &entity.ItemReview{},
		&entity.Report{},
	)
}

func SetupDatabase() error {
	return Migrate(db)
}
