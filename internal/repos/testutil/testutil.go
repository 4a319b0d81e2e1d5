package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/types"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Goal{},
		&types.Milestone{},
		&types.Task{},
		&types.Verification{},
	)
}

func open(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// A shared-cache memory database disappears when its last connection
	// closes; pinning the pool to one connection keeps it alive and keeps
	// every statement on the same database.
	sqlDB.SetMaxOpenConns(1)
	if err := autoMigrateAll(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// DB returns the process-shared in-memory database; pair it with Tx so each
// test's writes are rolled back.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dbOnce.Do(func() {
		db, dbErr = open("skillcoach_test")
	})
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

// Tx begins a transaction that is rolled back when the test finishes.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("failed to begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}

// NewDB returns a migrated database private to the calling test, for code
// that manages its own transactions.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	gdb, err := open("t_" + uuid.NewString())
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	return gdb
}
