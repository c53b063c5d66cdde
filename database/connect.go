package database

import (
	"fmt"
	"log"
	"time"

	"train_station/config"
	"train_station/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by settings.DBDriver.
func Connect(settings config.Settings) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch settings.DBDriver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(settings.DSN())
	case "mysql":
		dialector = mysql.Open(settings.DSN())
	case "sqlite":
		dialector = sqlite.Open(settings.DSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", settings.DBDriver)
	}
	return Open(dialector)
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer at a time; sqlite has no row locks
		sqlDB.SetMaxOpenConns(1)
	}
	log.Printf("connection opened to %s database", dialector.Name())
	return db, nil
}

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&model.User{},
		&model.TokenBlacklist{},
		&model.Station{},
		&model.Route{},
		&model.TrainType{},
		&model.Train{},
		&model.Crew{},
		&model.Journey{},
		&model.Order{},
		&model.Ticket{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Println("database migrated")
	return nil
}
