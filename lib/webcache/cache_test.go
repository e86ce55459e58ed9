package webcache

import (
	"context"
	"net/http"
	"testing"
	"time"
	"webcache/lib/testutil"
	"webcache/lib/webcache/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSqliteCacheRoundTrip(t *testing.T) {
	setup, cleanup := testutil.Setup(t, testutil.SetupParams{
		Name:     "lib/webcache:sqlitecache",
		DbSchema: db.Schema,
	})
	defer cleanup()

	cache, err := NewSqliteCache(setup.DB)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, hit, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.False(t, hit)

	// stored timestamps have millisecond precision
	want := Entry{
		Html:       "<html>content</html>",
		StatusCode: http.StatusOK,
		FetchedAt:  time.UnixMilli(time.Now().UnixMilli()),
	}
	require.NoError(t, cache.Put(ctx, "https://example.com", want))

	got, hit, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.True(t, hit)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestSqliteCacheKeepsSubsecondPrecision(t *testing.T) {
	setup, cleanup := testutil.Setup(t, testutil.SetupParams{
		Name:     "lib/webcache:sqlitecache",
		DbSchema: db.Schema,
	})
	defer cleanup()

	cache, err := NewSqliteCache(setup.DB)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	// truncating to whole seconds would make a reloaded entry look up
	// to a second older than it is and expire early under a tight TTL
	fetched := time.UnixMilli(1700000000999)
	require.NoError(t, cache.Put(ctx, "https://example.com", Entry{
		Html:       "x",
		StatusCode: http.StatusOK,
		FetchedAt:  fetched,
	}))

	got, hit, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.True(t, hit)
	require.True(t, got.FetchedAt.Equal(fetched))
}

func TestSqliteCacheOverwrite(t *testing.T) {
	setup, cleanup := testutil.Setup(t, testutil.SetupParams{
		Name:     "lib/webcache:sqlitecache",
		DbSchema: db.Schema,
	})
	defer cleanup()

	cache, err := NewSqliteCache(setup.DB)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	first := Entry{Html: "old", StatusCode: 200, FetchedAt: time.Unix(100, 0)}
	require.NoError(t, cache.Put(ctx, "https://example.com", first))
	second := Entry{Html: "new", StatusCode: 200, FetchedAt: time.Unix(200, 0)}
	require.NoError(t, cache.Put(ctx, "https://example.com", second))

	got, hit, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "new", got.Html)

	rows, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, hit, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.False(t, hit)

	entry := Entry{Html: "x", StatusCode: 200, FetchedAt: time.Now()}
	require.NoError(t, cache.Put(ctx, "https://example.com", entry))

	got, hit, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, entry.Html, got.Html)

	require.NoError(t, cache.Purge(ctx))
	_, hit, err = cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.False(t, hit)
}
