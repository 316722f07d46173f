package db_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/rootedtour/checkpoint/internal/db"
	"github.com/rootedtour/checkpoint/internal/models"
)

func open(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return gdb
}

// TestOpen_WALMode verifies that the DSN parameters enable WAL journal
// mode. WAL is the key SQLite setting for concurrent reads + single-writer
// throughput.
func TestOpen_WALMode(t *testing.T) {
	gdb := open(t)

	var mode string
	gdb.Raw("PRAGMA journal_mode").Scan(&mode)
	if mode != "wal" {
		t.Errorf("expected journal_mode=wal, got %q", mode)
	}
}

// TestOpen_DuplicateTicketID verifies that the ticket_id unique index is
// in place and that the driver translates violations to
// gorm.ErrDuplicatedKey. This is the registry's uniqueness enforcement
// point.
func TestOpen_DuplicateTicketID(t *testing.T) {
	gdb := open(t)

	first := models.Registration{TicketID: "RWT-00000001", FirstName: "A", LastName: "B", Email: "a@b.c"}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	second := models.Registration{TicketID: "RWT-00000001", FirstName: "C", LastName: "D", Email: "c@d.e"}
	err := gdb.Create(&second).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	var n int64
	gdb.Model(&models.Registration{}).Where("ticket_id = ?", "RWT-00000001").Count(&n)
	if n != 1 {
		t.Errorf("expected exactly 1 row after duplicate insert, got %d", n)
	}
}

// TestOpen_CreatesIndexes verifies the composite index that GORM does not
// auto-create from struct tags.
func TestOpen_CreatesIndexes(t *testing.T) {
	gdb := open(t)

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}

	found := indexNames(t, sqlDB, "registrations")
	if !found["idx_reg_status_checkin"] {
		t.Errorf("index idx_reg_status_checkin missing; found: %v", found)
	}
}

func indexNames(t *testing.T, sqlDB *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := sqlDB.Query("PRAGMA index_list(" + table + ")")
	if err != nil {
		t.Fatalf("PRAGMA index_list: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var seq int
		var name string
		var unique bool
		var origin, partial string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out[name] = true
	}
	return out
}
