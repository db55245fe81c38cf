package testutil

import (
	"sync"
	"testing"

	"github.com/yungbote/articlehub-backend/internal/logger"
	"github.com/yungbote/articlehub-backend/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
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

// DB returns a fresh in-memory sqlite database with all tables migrated.
// Each call gets its own database, so tests never see each other's rows.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&types.User{},
		&types.Article{},
		&types.InteractionEvent{},
		&types.UserAnswer{},
		&types.Comment{},
		&types.Notification{},
	); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}
	return db
}
