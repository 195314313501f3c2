package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prospectiq/dataops-backend/query"
)

// testDatabase opens a fresh in-memory database with the full schema applied.
func testDatabase(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	// The in-memory database lives per connection; keep the pool at one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	d := New(db)
	if err := d.Migrate(); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return d
}

func TestTransactionRollsBackOnError(t *testing.T) {
	d := testDatabase(t)

	boom := gorm.ErrInvalidData
	err := d.Transaction(func(tx Database) error {
		client := newTestClient("Acme", "AC")
		if err := tx.ClientRepo().Add(client); err != nil {
			return err
		}
		return boom
	})
	if err == nil {
		t.Fatal("transaction succeeded, want error")
	}

	total, clients, err := d.ClientRepo().FindAll(query.Page{})
	if err != nil {
		t.Fatalf("listing clients: %v", err)
	}
	if total != 0 || len(clients) != 0 {
		t.Errorf("client row survived a rolled-back transaction (total=%d)", total)
	}
}
