package testutil

import (
	"fmt"
	"strings"
	"testing"

	"project/backend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens an in-memory sqlite database named after the test, so
// parallel tests never share state, and migrates the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := utils.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	if err := utils.SeedSubjects(gdb); err != nil {
		t.Fatalf("failed to seed subjects: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})

	return gdb
}
