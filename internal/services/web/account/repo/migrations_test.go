package repo

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestMigrationSet_Parses(t *testing.T) {
	t.Parallel()
	src, err := iofs.New(MigrationSet.FS, MigrationSet.Dir)
	if err != nil {
		t.Fatalf("iofs: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil || first != 1 {
		t.Fatalf("first = %d, %v", first, err)
	}
	up, _, err := src.ReadUp(first)
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	up.Close()
	down, _, err := src.ReadDown(first)
	if err != nil {
		t.Fatalf("every up needs a down: %v", err)
	}
	down.Close()
}

func TestMigrations_Named(t *testing.T) {
	t.Parallel()
	names, err := fs.Glob(Migrations, "migrations/*.sql")
	if err != nil || len(names) == 0 {
		t.Fatalf("glob = %v, %v", names, err)
	}
	for _, n := range names {
		if !strings.HasSuffix(n, ".up.sql") && !strings.HasSuffix(n, ".down.sql") {
			t.Fatalf("%s is neither up nor down", n)
		}
	}
}
