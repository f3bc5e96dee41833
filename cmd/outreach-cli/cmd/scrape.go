package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"outreach-backend/services/contacts"
)

var scrapeGender string

func init() {
	scrapeCmd.Flags().StringVar(&scrapeGender, "gender", "", "men, women or unknown")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <school> <sport>",
	Short: "Scrapes one team's coaching staff and picks a contact.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		gender, err := parseGender(scrapeGender)
		if err != nil {
			fatal(err)
		}

		pipeline := newPipeline()
		report := pipeline.Process(cmd.Context(), []contacts.Request{
			{School: args[0], Sport: args[1], Gender: gender},
		})
		result := report.Results[0]
		if result.Err != "" {
			fatal(fmt.Errorf("%s %s: %s", args[0], args[1], result.Err))
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Title", "Email", "Phone"})
		for _, member := range result.Staff {
			t.AppendRow(table.Row{member.Name, member.Title, member.Email, member.Phone})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		if !result.Selected {
			fmt.Println("no reachable contact found")
			return
		}
		fmt.Printf(
			"selected: %s <%s> (%s, %s)\n",
			result.Selection.Member.Name,
			result.Selection.Member.Email,
			result.Selection.Member.Title,
			result.Selection.Quality,
		)
		for _, issue := range result.Issues {
			fmt.Printf("%s: %s\n", issue.Severity, issue.Detail)
		}
	},
}
