package matchstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"outreach-backend/lib/scrapers/athletics"
	"outreach-backend/lib/testutil"
	"outreach-backend/lib/timezone"
	"outreach-backend/services/contacts"
	"outreach-backend/services/matchstore/db"
)

func testReport() contacts.Report {
	return contacts.Report{
		Total:     2,
		Selected:  1,
		NoContact: 0,
		Failed:    1,
		Results: []contacts.Result{
			{
				Request:   contacts.Request{School: "Merrimack", Sport: "Baseball", Gender: athletics.GenderMen},
				School:    "Merrimack College",
				SourceURL: "https://merrimackathletics.com/sports/baseball/coaches",
				Selected:  true,
				Selection: contacts.Selection{
					Member: athletics.StaffMember{
						Name:  "Nick Cordaro",
						Title: "Director of Baseball Operations",
						Email: "cordaron@merrimack.edu",
						Phone: "978-837-5001",
					},
					Quality: contacts.QualityExcellent,
				},
			},
			{
				Request: contacts.Request{School: "Hogwarts", Sport: "Quidditch"},
				Err:     "institution not found",
			},
		},
	}
}

func TestRecordAndGetRun(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "matchstore",
		DbSchema: db.Schema,
	})
	defer cleanup()

	service := NewService(res.DB)
	ctx := context.Background()
	startedAt := timezone.Now().Unix()

	runID, err := service.RecordReport(ctx, startedAt, testReport())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, results, err := service.GetRun(ctx, runID)
	require.NoError(t, err)
	require.Equal(t, runID, run.ID)
	require.Equal(t, startedAt, run.StartedAt)
	require.EqualValues(t, 2, run.Total)
	require.EqualValues(t, 1, run.Selected)
	require.EqualValues(t, 1, run.Failed)
	require.NotZero(t, run.FinishedAt)

	require.Len(t, results, 2)
	require.Equal(t, "Nick Cordaro", results[0].ContactName)
	require.Equal(t, "cordaron@merrimack.edu", results[0].ContactEmail)
	require.Equal(t, string(contacts.QualityExcellent), results[0].Quality)
	require.Equal(t, "institution not found", results[1].Error)
	require.Empty(t, results[1].ContactName)
}

func TestListRuns(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "matchstore",
		DbSchema: db.Schema,
	})
	defer cleanup()

	service := NewService(res.DB)
	ctx := context.Background()

	first, err := service.RecordReport(ctx, 100, testReport())
	require.NoError(t, err)
	second, err := service.RecordReport(ctx, 200, testReport())
	require.NoError(t, err)

	runs, err := service.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// newest first
	require.Equal(t, second, runs[0].ID)
	require.Equal(t, first, runs[1].ID)
}
