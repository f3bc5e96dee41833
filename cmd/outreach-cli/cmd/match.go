package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/titanous/json5"

	"outreach-backend/lib/timezone"
	"outreach-backend/services/contacts"
	"outreach-backend/services/matchstore"
	matchdb "outreach-backend/services/matchstore/db"

	configlibsql "outreach-backend/lib/configutil/libsql"
)

var matchInput string

func init() {
	matchCmd.Flags().StringVar(&matchInput, "input", "teams.json5", "json5 file listing {school, sport, gender} requests")
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Runs the full contact pipeline over a list of teams and records the run.",
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(matchInput)
		if err != nil {
			fatal(err)
		}
		var requests []contacts.Request
		err = json5.Unmarshal(raw, &requests)
		if err != nil {
			fatal(fmt.Errorf("parse %s: %w", matchInput, err))
		}
		if len(requests) == 0 {
			fatal(fmt.Errorf("%s lists no teams", matchInput))
		}

		database, err := configlibsql.Struct{File: dbPath}.OpenDB(matchdb.Schema)
		if err != nil {
			fatal(err)
		}
		defer database.Close()
		store := matchstore.NewService(database)

		pipeline := newPipeline()
		startedAt := timezone.Now().Unix()
		report := pipeline.Process(cmd.Context(), requests)

		runID, err := store.RecordReport(cmd.Context(), startedAt, report)
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"School", "Sport", "Contact", "Email", "Quality", "Cache", "Error"})
		for _, result := range report.Results {
			t.AppendRow(table.Row{
				result.Request.School,
				result.Request.Sport,
				result.Selection.Member.Name,
				result.Selection.Member.Email,
				result.Selection.Quality,
				result.FromCache,
				result.Err,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Printf(
			"run %s: %d teams, %d contacts, %d without, %d failed\n",
			runID, report.Total, report.Selected, report.NoContact, report.Failed,
		)
	},
}
