package database

import (
	"context"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vivero/entities"
	"vivero/pkg/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&entities.Producer{},
		&entities.Farm{},
		&entities.Nursery{},
		&entities.FungusControlProduct{},
		&entities.PestControlProduct{},
		&entities.FertilizerControlProduct{},
		&entities.Labor{},
	}
}

// OpenSQLite opens path (":memory:" for a private in-memory database) with
// foreign keys enforced.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if path != MemoryPath {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		dsn = path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if path == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec(`PRAGMA foreign_keys = ON`).Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if err := ensureForeignKeys(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table, join tables included.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	logger.L().Info("database.migrated", "tables", len(Models()))
	return nil
}

// OpenAndMigrate is OpenSQLite followed by Migrate.
func OpenAndMigrate(path string) (*gorm.DB, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureForeignKeys fails when the connection does not enforce foreign keys;
// SQLite leaves them off unless asked.
func ensureForeignKeys(db *gorm.DB) error {
	var on int
	if err := db.Raw(`PRAGMA foreign_keys`).Scan(&on).Error; err != nil {
		return fmt.Errorf("read foreign_keys pragma: %w", err)
	}
	if on != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

// HasTable is used by tests and the migrate command.
func HasTable(db *gorm.DB, name string) (bool, error) {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, name).Scan(&tbl).Error; err != nil {
		return false, fmt.Errorf("check table exist: %w", err)
	}
	return tbl != "", nil
}

// JoinTables are the labor/product link tables created through many2many.
var JoinTables = []string{"labor_fungus_products", "labor_pest_products", "labor_fertilizer_products"}

// Counts returns the row count of every model and join table.
func Counts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	db = db.WithContext(ctx)
	out := map[string]int64{}
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse model: %w", err)
		}
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", stmt.Schema.Table, err)
		}
		out[stmt.Schema.Table] = n
	}
	for _, t := range JoinTables {
		var n int64
		if err := db.Table(t).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		out[t] = n
	}
	return out, nil
}
