package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillcoach/backend/internal/logger"
	"github.com/skillcoach/backend/internal/types"
	"github.com/skillcoach/backend/internal/utils"
)

type DatabaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewDatabaseService connects to the store named by DATABASE_URL. A
// postgres:// URL opens the postgres driver; anything else (including the
// unset default) opens the embedded sqlite file.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")

	databaseURL := utils.GetEnv("DATABASE_URL", "skillapp.db", log)

	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		serviceLog.Info("Connecting to Postgres...")
		dialector = postgres.Open(databaseURL)
	} else {
		serviceLog.Info("DATABASE_URL not set to postgres, using embedded sqlite", "path", databaseURL)
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DatabaseService{db: db, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Goal{},
		&types.Milestone{},
		&types.Task{},
		&types.Verification{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}
