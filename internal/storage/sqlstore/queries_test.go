package sqlstore

import (
	"testing"

	"github.com/julianstephens/burnoutguard/internal/migration"
)

func TestRebind(t *testing.T) {
	query := "UPDATE tasks SET title = ?, completed = ? WHERE id = ?"

	if got := Rebind(migration.SQLite, query); got != query {
		t.Errorf("Rebind(SQLite) = %q, want unchanged", got)
	}
	want := "UPDATE tasks SET title = $1, completed = $2 WHERE id = $3"
	if got := Rebind(migration.Postgres, query); got != want {
		t.Errorf("Rebind(Postgres) = %q, want %q", got, want)
	}
}
