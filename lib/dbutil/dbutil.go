package dbutil

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"
	devenv "webcache/dev/env"

	_ "modernc.org/sqlite"
)

// DefaultOverwriteDelay is how long CreateDatabase waits before
// clobbering an existing database file, giving an interactive user a
// chance to abort.
const DefaultOverwriteDelay = time.Second * 5

type CreateOptions struct {
	// Path is the database file to create.
	Path string
	// Schema is executed against the fresh database.
	Schema string
	// Overwrite replaces an existing file instead of failing.
	Overwrite bool
	// OverwriteDelay overrides DefaultOverwriteDelay. Negative means no
	// delay.
	OverwriteDelay time.Duration
}

// CreateDatabase creates a sqlite database file and applies a schema to
// it. An existing file is an error unless Overwrite is set, in which
// case it is replaced after a grace delay.
func CreateDatabase(ctx context.Context, opts CreateOptions) error {
	dbpath, err := devenv.ResolvePath(opts.Path)
	if err != nil {
		return err
	}

	_, err = os.Stat(dbpath)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if exists {
		if !opts.Overwrite {
			return fmt.Errorf("database already exists at %s", dbpath)
		}

		delay := opts.OverwriteDelay
		if delay == 0 {
			delay = DefaultOverwriteDelay
		}
		if delay > 0 {
			slog.Warn(
				"overwriting existing database, interrupt now to abort",
				"path", dbpath,
				"delay", delay,
			)
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}

		err = os.Remove(dbpath)
		if err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, opts.Schema)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Info("database created", "path", dbpath)
	return nil
}

// Connect opens an existing sqlite database file.
func Connect(path string) (*sql.DB, error) {
	dbpath, err := devenv.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dbpath); err != nil {
		return nil, err
	}
	return sql.Open("sqlite", dbpath)
}
