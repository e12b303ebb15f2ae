package repositories

import (
	"testing"
)

func TestSQLiteStorageErrors(t *testing.T) {
	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStorage(db)
		db.Close()

		if _, _, err := store.Get("k"); err == nil {
			t.Error("expected error from Get on closed database")
		}
		if err := store.Set("k", []byte("1")); err == nil {
			t.Error("expected error from Set on closed database")
		}
		if err := store.Remove("k"); err == nil {
			t.Error("expected error from Remove on closed database")
		}
		if err := store.Clear(); err == nil {
			t.Error("expected error from Clear on closed database")
		}
		if _, err := store.Keys(); err == nil {
			t.Error("expected error from Keys on closed database")
		}
	})

	t.Run("Missing Table", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := db.Exec("DROP TABLE kv_entries"); err != nil {
			t.Fatalf("failed to drop table: %v", err)
		}

		if _, _, err := NewSQLiteStorage(db).Get("k"); err == nil {
			t.Error("expected error when table is missing")
		}
	})
}

func TestJSONHelperErrors(t *testing.T) {
	t.Run("Corrupt Value", func(t *testing.T) {
		store := NewMemoryStorage()
		store.Set(PlaylistsKey, []byte("{not json"))

		var out []string
		ok, err := GetJSON(store, PlaylistsKey, &out)
		if err == nil {
			t.Fatal("expected decode error")
		}
		if ok {
			t.Error("expected ok=false on decode error")
		}
	})

	t.Run("Unencodable Value", func(t *testing.T) {
		if err := SetJSON(NewMemoryStorage(), "k", make(chan int)); err == nil {
			t.Error("expected encode error")
		}
	})

	t.Run("Write Failure", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStorage(db)
		db.Close()

		if err := SetJSON(store, "k", "v"); err == nil {
			t.Error("expected write error")
		}
	})
}
