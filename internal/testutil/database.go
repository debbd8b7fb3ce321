package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

// SetupTestDB opens the test database and creates the schema. Tests are
// skipped when no MySQL instance is reachable. The DSN can be overridden
// with TEST_DATABASE_DSN.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/gastronomy_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	if err := mysql.Bootstrap(db); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

// CleanupTestDB empties every table in reverse dependency order and
// closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"archived_order_inventories",
		"archived_order_dishes",
		"archived_orders",
		"archived_inventories",
		"archived_dishes",
		"order_inventories",
		"order_dishes",
		"orders",
		"client_companies",
		"clients",
		"company_addresses",
		"companies",
		"addresses",
		"menu_categories",
		"menus",
		"category_dishes",
		"categories",
		"inventories",
		"dishes",
		"realization_types",
		"users",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
