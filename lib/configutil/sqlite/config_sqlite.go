package configsqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	devenv "webcache/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct describes where the cache database lives: either a local
// sqlite file or a remote libsql instance.
type Struct struct {
	File      string `json:"file" yaml:"file"`
	Url       string `json:"url" yaml:"url"`
	AuthToken string `json:"auth_token" yaml:"auth_token"`
}

func (config Struct) OpenDB() (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("a database file was not specified")
		}
		dbpath, err := devenv.ResolvePath(config.File)
		if err != nil {
			return nil, err
		}
		return sql.Open("sqlite", dbpath)
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	db, err := sql.Open("libsql", config.Url+"?"+values.Encode())
	if err != nil {
		return nil, err
	}
	return db, nil
}
