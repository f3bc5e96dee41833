package db

import (
	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Run struct {
	ID         string
	StartedAt  int64
	FinishedAt int64
	Total      int64
	Selected   int64
	NoContact  int64
	Failed     int64
}

type RunResult struct {
	RunID        string
	School       string
	Sport        string
	Gender       string
	ContactName  string
	ContactTitle string
	ContactEmail string
	ContactPhone string
	Quality      string
	SourceURL    string
	FromCache    bool
	Error        string
}
