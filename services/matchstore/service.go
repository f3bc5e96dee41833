// Package matchstore keeps a durable history of pipeline runs so
// successive outreach cycles can be compared and audited.
package matchstore

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"outreach-backend/lib/timezone"
	"outreach-backend/services/contacts"
	"outreach-backend/services/matchstore/db"
)

var tracer = otel.Tracer("outreach.services.matchstore")

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// RecordReport writes a finished pipeline run and all of its per-team
// results in one transaction, returning the run id.
func (s Service) RecordReport(ctx context.Context, startedAt int64, report contacts.Report) (string, error) {
	ctx, span := tracer.Start(ctx, "RecordReport")
	defer span.End()

	runID := uuid.NewString()
	span.SetAttributes(attribute.String("run_id", runID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.CreateRun(ctx, runID, startedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	for _, result := range report.Results {
		row := db.RunResult{
			RunID:     runID,
			School:    result.Request.School,
			Sport:     result.Request.Sport,
			Gender:    string(result.Request.Gender),
			Quality:   string(result.Selection.Quality),
			SourceURL: result.SourceURL,
			FromCache: result.FromCache,
			Error:     result.Err,
		}
		if result.Selected {
			row.ContactName = result.Selection.Member.Name
			row.ContactTitle = result.Selection.Member.Title
			row.ContactEmail = result.Selection.Member.Email
			row.ContactPhone = result.Selection.Member.Phone
		}

		err = txqry.CreateRunResult(ctx, row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", err
		}
	}

	err = txqry.FinishRun(ctx, db.FinishRunParams{
		ID:         runID,
		FinishedAt: timezone.Now().Unix(),
		Total:      int64(report.Total),
		Selected:   int64(report.Selected),
		NoContact:  int64(report.NoContact),
		Failed:     int64(report.Failed),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return runID, nil
}

func (s Service) GetRun(ctx context.Context, runID string) (db.Run, []db.RunResult, error) {
	ctx, span := tracer.Start(ctx, "GetRun")
	defer span.End()

	run, err := s.qry.GetRun(ctx, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.Run{}, nil, err
	}
	results, err := s.qry.GetRunResults(ctx, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.Run{}, nil, err
	}
	return run, results, nil
}

func (s Service) ListRuns(ctx context.Context, limit int64) ([]db.Run, error) {
	ctx, span := tracer.Start(ctx, "ListRuns")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	runs, err := s.qry.ListRuns(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return runs, nil
}
