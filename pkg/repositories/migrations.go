package repositories

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// readMigrations returns the contents of every file in dir, in name order.
func readMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var migrations []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(dir, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		migrations = append(migrations, string(migration))
	}
	return migrations, nil
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
