package commands

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the webpage cache.",
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists all cached webpages.",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := readConfig()
		if err != nil {
			log.Fatal(err)
		}
		_, cache, err := openStore(config)
		if err != nil {
			log.Fatal(err)
		}

		rows, err := cache.List(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"URL", "Status", "Age", "Size"})
		for _, row := range rows {
			age := time.Since(time.UnixMilli(row.FetchedAt)).Round(time.Second)
			t.AppendRow(table.Row{row.Url, row.StatusCode, age, len(row.Html)})
		}
		t.Render()
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Deletes every cached webpage.",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := readConfig()
		if err != nil {
			log.Fatal(err)
		}
		store, _, err := openStore(config)
		if err != nil {
			log.Fatal(err)
		}

		err = store.Purge(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("cache purged")
	},
}
