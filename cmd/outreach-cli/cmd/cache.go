package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"outreach-backend/lib/season"
	"outreach-backend/lib/timezone"
	"outreach-backend/services/contactcache"
)

var cacheGender string

func init() {
	cacheCmd.Flags().StringVar(&cacheGender, "gender", "", "men, women or unknown")
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache <school> <sport>",
	Short: "Shows the cached staff record for a team and whether it is stale.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		gender, err := parseGender(cacheGender)
		if err != nil {
			fatal(err)
		}

		cache, err := contactcache.NewService(cacheDir)
		if err != nil {
			fatal(err)
		}

		record, err := cache.Lookup(cmd.Context(), args[0], gender, args[1])
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Title", "Email", "Phone"})
		for _, member := range record.Staff {
			t.AppendRow(table.Row{member.Name, member.Title, member.Email, member.Phone})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		year := season.Current(timezone.Now())
		fmt.Printf(
			"scraped at %s from %s, stale: %v\n",
			record.ScrapedAt, record.SourceURL,
			contactcache.IsStale(record, year),
		)
	},
}
