package db

import (
	"context"
)

const getWebpage = `
SELECT url, html, status_code, fetched_at FROM webpages
WHERE url = ?
`

func (q *Queries) GetWebpage(ctx context.Context, url string) (Webpage, error) {
	row := q.db.QueryRowContext(ctx, getWebpage, url)
	var i Webpage
	err := row.Scan(&i.Url, &i.Html, &i.StatusCode, &i.FetchedAt)
	return i, err
}

const upsertWebpage = `
INSERT INTO webpages (url, html, status_code, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (url) DO UPDATE SET
    html = excluded.html,
    status_code = excluded.status_code,
    fetched_at = excluded.fetched_at
`

type UpsertWebpageParams struct {
	Url        string
	Html       string
	StatusCode int64
	FetchedAt  int64
}

func (q *Queries) UpsertWebpage(ctx context.Context, arg UpsertWebpageParams) error {
	_, err := q.db.ExecContext(ctx, upsertWebpage,
		arg.Url,
		arg.Html,
		arg.StatusCode,
		arg.FetchedAt,
	)
	return err
}

const listWebpages = `
SELECT url, html, status_code, fetched_at FROM webpages
ORDER BY fetched_at DESC
`

func (q *Queries) ListWebpages(ctx context.Context) ([]Webpage, error) {
	rows, err := q.db.QueryContext(ctx, listWebpages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Webpage
	for rows.Next() {
		var i Webpage
		err := rows.Scan(&i.Url, &i.Html, &i.StatusCode, &i.FetchedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteWebpage = `
DELETE FROM webpages WHERE url = ?
`

func (q *Queries) DeleteWebpage(ctx context.Context, url string) error {
	_, err := q.db.ExecContext(ctx, deleteWebpage, url)
	return err
}

const purgeWebpages = `
DELETE FROM webpages
`

func (q *Queries) PurgeWebpages(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, purgeWebpages)
	return err
}
