package repositories

import (
	"context"
	"fmt"
	"net/url"
)

// NewRepositoryFromURL creates the repository selected by the scheme of
// databaseURL: sqlite, postgres/postgresql or file. When migrations is empty
// the SQL backends read ./migrations/sqlite or ./migrations/postgres.
func NewRepositoryFromURL(ctx context.Context, databaseURL string, migrations string) (Repository, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		if migrations == "" {
			migrations = "./migrations/sqlite"
		}
		repository, err := NewSQLiteRepository(ctx, u.Host+u.Path, migrations)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		if migrations == "" {
			migrations = "./migrations/postgres"
		}
		repository, err := NewPostgresRepository(ctx, u.String(), migrations)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	case "file":
		repository, err := NewFileRepository(u.Host + u.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file repository: %v", err)
		}
		return repository, nil
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
