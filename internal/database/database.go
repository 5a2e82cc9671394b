package database

import (
	"fmt"
	"os"
	"path"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm.DB instance.
type DB struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*DB, error) {
	if err := os.MkdirAll(dbpath, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return open(path.Join(dbpath, "workdesk.db"))
}

// NewInMemory creates an in-memory database, used by tests.
func NewInMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &DB{db: db}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Preference{},
		&Project{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset drops all tables and re-runs migrations, leaving an empty schema.
func (d *DB) Reset() error {
	if err := d.db.Migrator().DropTable(&Project{}, &Preference{}, &User{}); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return migrate(d.db)
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
