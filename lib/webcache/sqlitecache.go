package webcache

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"webcache/lib/webcache/db"
)

// SqliteCache stores entries in a sqlite (or libsql) database. The
// schema is applied on construction, so a fresh database file works out
// of the box.
type SqliteCache struct {
	qry *db.Queries
}

func NewSqliteCache(database *sql.DB) (*SqliteCache, error) {
	_, err := database.Exec(db.Schema)
	if err != nil {
		return nil, err
	}
	return &SqliteCache{qry: db.New(database)}, nil
}

func (c *SqliteCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	row, err := c.qry.GetWebpage(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{
		Html:       row.Html,
		StatusCode: int(row.StatusCode),
		FetchedAt:  time.UnixMilli(row.FetchedAt),
	}, true, nil
}

func (c *SqliteCache) Put(ctx context.Context, key string, entry Entry) error {
	return c.qry.UpsertWebpage(ctx, db.UpsertWebpageParams{
		Url:        key,
		Html:       entry.Html,
		StatusCode: int64(entry.StatusCode),
		FetchedAt:  entry.FetchedAt.UnixMilli(),
	})
}

func (c *SqliteCache) Purge(ctx context.Context) error {
	return c.qry.PurgeWebpages(ctx)
}

// List returns every cached row, newest first. Used by the CLI, not
// part of the Cache interface.
func (c *SqliteCache) List(ctx context.Context) ([]db.Webpage, error) {
	return c.qry.ListWebpages(ctx)
}
