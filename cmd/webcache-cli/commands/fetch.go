package commands

import (
	"errors"
	"fmt"
	"log"
	"webcache/lib/htmlutil"
	"webcache/lib/webcache"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch URL...",
	Short: "Fetches one or more webpages through the cache.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := readConfig()
		if err != nil {
			log.Fatal(err)
		}
		store, _, err := openStore(config)
		if err != nil {
			log.Fatal(err)
		}

		for _, url := range args {
			res, err := store.Fetch(cmd.Context(), url, nil)
			if errors.Is(err, webcache.ErrNotFound) {
				fmt.Printf("%s: not found (404)\n", url)
				continue
			}
			if err != nil {
				log.Fatal(err)
			}

			source := "network"
			if res.FromCache {
				source = "cache"
			}
			title := htmlutil.Title(res.Html)
			if title == "" {
				title = "(no title)"
			}
			fmt.Printf("%s: %d, %d bytes, from %s, %s\n", url, res.StatusCode, len(res.Html), source, title)
		}
	},
}
