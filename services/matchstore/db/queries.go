package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createRun = `
INSERT INTO run (id, started_at) VALUES (?, ?)
`

func (q *Queries) CreateRun(ctx context.Context, id string, startedAt int64) error {
	_, err := q.db.ExecContext(ctx, createRun, id, startedAt)
	return err
}

const finishRun = `
UPDATE run
SET finished_at = ?, total = ?, selected = ?, no_contact = ?, failed = ?
WHERE id = ?
`

type FinishRunParams struct {
	ID         string
	FinishedAt int64
	Total      int64
	Selected   int64
	NoContact  int64
	Failed     int64
}

func (q *Queries) FinishRun(ctx context.Context, arg FinishRunParams) error {
	_, err := q.db.ExecContext(
		ctx, finishRun,
		arg.FinishedAt, arg.Total, arg.Selected, arg.NoContact, arg.Failed,
		arg.ID,
	)
	return err
}

const createRunResult = `
INSERT INTO run_result (
    run_id, school, sport, gender,
    contact_name, contact_title, contact_email, contact_phone,
    quality, source_url, from_cache, error
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateRunResult(ctx context.Context, arg RunResult) error {
	_, err := q.db.ExecContext(
		ctx, createRunResult,
		arg.RunID, arg.School, arg.Sport, arg.Gender,
		arg.ContactName, arg.ContactTitle, arg.ContactEmail, arg.ContactPhone,
		arg.Quality, arg.SourceURL, arg.FromCache, arg.Error,
	)
	return err
}

const getRun = `
SELECT id, started_at, finished_at, total, selected, no_contact, failed
FROM run WHERE id = ?
`

func (q *Queries) GetRun(ctx context.Context, id string) (Run, error) {
	row := q.db.QueryRowContext(ctx, getRun, id)
	var run Run
	var finishedAt sql.NullInt64
	err := row.Scan(
		&run.ID, &run.StartedAt, &finishedAt,
		&run.Total, &run.Selected, &run.NoContact, &run.Failed,
	)
	if err != nil {
		return Run{}, err
	}
	run.FinishedAt = finishedAt.Int64
	return run, nil
}

const listRuns = `
SELECT id, started_at, finished_at, total, selected, no_contact, failed
FROM run ORDER BY started_at DESC LIMIT ?
`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var finishedAt sql.NullInt64
		err := rows.Scan(
			&run.ID, &run.StartedAt, &finishedAt,
			&run.Total, &run.Selected, &run.NoContact, &run.Failed,
		)
		if err != nil {
			return nil, err
		}
		run.FinishedAt = finishedAt.Int64
		out = append(out, run)
	}
	return out, rows.Err()
}

const getRunResults = `
SELECT run_id, school, sport, gender,
    contact_name, contact_title, contact_email, contact_phone,
    quality, source_url, from_cache, error
FROM run_result WHERE run_id = ?
`

func (q *Queries) GetRunResults(ctx context.Context, runID string) ([]RunResult, error) {
	rows, err := q.db.QueryContext(ctx, getRunResults, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunResult
	for rows.Next() {
		var result RunResult
		err := rows.Scan(
			&result.RunID, &result.School, &result.Sport, &result.Gender,
			&result.ContactName, &result.ContactTitle, &result.ContactEmail, &result.ContactPhone,
			&result.Quality, &result.SourceURL, &result.FromCache, &result.Error,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}
