package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" driver

	"wearhouse/internal/domain"
)

const (
	connectAttempts = 5
	initialBackoff  = 500 * time.Millisecond
)

// Database owns the GORM connection. It is constructed once by the
// composition root and passed by reference; Connect and Close are idempotent.
type Database struct {
	mu  sync.Mutex
	dsn string
	db  *gorm.DB
}

func New(dsn string) *Database {
	return &Database{dsn: dsn}
}

// Connect opens the connection, retrying with doubling backoff. Only the
// initial connect is retried; individual queries are never retried here.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return nil
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := open(d.dsn)
		if err == nil {
			d.db = db
			return nil
		}
		lastErr = err
		log.Printf("db connect attempt=%d/%d error=%q", attempt, connectAttempts, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("connect database: %w", lastErr)
}

func open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite:", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// DB returns the live GORM handle. Panics if Connect was never called; the
// composition root connects before wiring repositories.
func (d *Database) DB() *gorm.DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		panic("database: DB() called before Connect")
	}
	return d.db
}

func (d *Database) Migrate() error {
	return d.DB().AutoMigrate(&domain.User{}, &domain.Garment{})
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}
