package database

import (
	"testing"
)

// setupTestDB opens an in-memory SQLite database with the full migration
// set applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func createTestProfile(t *testing.T, db *DB, id, name, email string) *User {
	t.Helper()
	if err := db.EnsureProfile(id, name, email); err != nil {
		t.Fatalf("Failed to create test profile %s: %v", email, err)
	}
	user, err := db.GetUserByID(id)
	if err != nil || user == nil {
		t.Fatalf("Failed to read back test profile %s: %v", email, err)
	}
	return user
}
