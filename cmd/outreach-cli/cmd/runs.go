package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	configlibsql "outreach-backend/lib/configutil/libsql"
	"outreach-backend/lib/timezone"
	"outreach-backend/services/matchstore"
	matchdb "outreach-backend/services/matchstore/db"
)

func init() {
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "Lists recorded pipeline runs, or shows one run's results.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := configlibsql.Struct{File: dbPath}.OpenDB(matchdb.Schema)
		if err != nil {
			fatal(err)
		}
		defer database.Close()
		store := matchstore.NewService(database)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		if len(args) == 1 {
			_, results, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				fatal(err)
			}
			t.AppendHeader(table.Row{"School", "Sport", "Contact", "Email", "Quality", "Error"})
			for _, result := range results {
				t.AppendRow(table.Row{
					result.School, result.Sport,
					result.ContactName, result.ContactEmail,
					result.Quality, result.Error,
				})
			}
		} else {
			runs, err := store.ListRuns(cmd.Context(), 20)
			if err != nil {
				fatal(err)
			}
			t.AppendHeader(table.Row{"Run", "Started", "Total", "Selected", "No Contact", "Failed"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					run.ID,
					time.Unix(run.StartedAt, 0).In(timezone.Location).Format(time.DateTime),
					run.Total, run.Selected, run.NoContact, run.Failed,
				})
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
