package commands

import (
	"log"
	"os"
	"webcache/lib/dbutil"
	"webcache/lib/webcache/db"

	"github.com/spf13/cobra"
)

var createdbPath string
var createdbSchema string
var createdbOverwrite bool

func init() {
	createdbCmd.Flags().StringVarP(&createdbPath, "database", "d", "cache.db", "path to the database file to create")
	createdbCmd.Flags().StringVarP(&createdbSchema, "schema", "s", "", "path to a schema file, defaults to the webpage cache schema")
	createdbCmd.Flags().BoolVarP(&createdbOverwrite, "overwrite", "o", false, "overwrite an existing database file")
	rootCmd.AddCommand(createdbCmd)
}

var createdbCmd = &cobra.Command{
	Use:   "createdb",
	Short: "Creates a sqlite database from a schema.",
	Run: func(cmd *cobra.Command, args []string) {
		schema := db.Schema
		if createdbSchema != "" {
			contents, err := os.ReadFile(createdbSchema)
			if err != nil {
				log.Fatal(err)
			}
			schema = string(contents)
		}

		err := dbutil.CreateDatabase(cmd.Context(), dbutil.CreateOptions{
			Path:      createdbPath,
			Schema:    schema,
			Overwrite: createdbOverwrite,
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}
