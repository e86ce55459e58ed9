package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	devenv "webcache/dev/env"
	"webcache/lib/telemetry"

	_ "modernc.org/sqlite"
)

type SetupParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type SetupResult struct {
	DB *sql.DB
}

func Setup(t testing.TB, params SetupParams) (SetupResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	dbpath := ":memory:"
	if params.DbPath != "" && params.DbPath != ":memory:" {
		var err error
		dbpath, err = devenv.ResolvePath(params.DbPath)
		if err != nil {
			t.Fatal(err)
		}
	}
	sqlite, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	if params.DbSchema != "" {
		_, err = sqlite.Exec(params.DbSchema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
	}

	return SetupResult{
		DB: sqlite,
	}, cleanup
}
