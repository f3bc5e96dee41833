package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"outreach-backend/services/directory"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <school>...",
	Short: "Resolves school names to athletics site URLs.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := directory.NewService()
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Input", "School", "Site", "Confidence"})

		for _, school := range args {
			inst, confidence, err := service.Resolve(cmd.Context(), school)
			if err != nil {
				t.AppendRow(table.Row{school, "-", "-", err.Error()})
				continue
			}
			t.AppendRow(table.Row{school, inst.Name, inst.URL, confidence})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
