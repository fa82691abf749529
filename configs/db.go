package configs

import (
	"errors"
	"log"

	"github.com/cb023725/pos-project/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SchemaVersion guards the orders schema. An incompatible stored version causes
// a destructive rebuild of the orders collections at startup, as the item-level
// payment flags cannot be backfilled from older shapes.
const SchemaVersion = 3

type schemaInfo struct {
	ID      uint `gorm:"primaryKey"`
	Version int
}

func (schemaInfo) TableName() string { return "schema_infos" }

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

// SetupDatabase creates the collections idempotently and, when the stored
// schema version is incompatible, drops and rebuilds the orders collections
// before migrating. Menu and table records always survive an upgrade.
func SetupDatabase() {
	if err := db.AutoMigrate(&schemaInfo{}); err != nil {
		log.Fatalf("migrate schema info failed: %v", err)
	}

	var info schemaInfo
	err := db.First(&info).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fresh store
	case err != nil:
		log.Fatalf("read schema version failed: %v", err)
	case info.Version != SchemaVersion:
		log.Printf("orders schema v%d is incompatible with v%d, rebuilding", info.Version, SchemaVersion)
		if err := db.Migrator().DropTable(&entity.Order{}, &entity.OrderItem{}); err != nil {
			log.Fatalf("drop orders failed: %v", err)
		}
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.TableRecord{},
	); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	info.Version = SchemaVersion
	if err := db.Save(&info).Error; err != nil {
		log.Fatalf("write schema version failed: %v", err)
	}
}
