// outreachd exposes the contact pipeline over http: POST /trigger
// starts a run over the configured team list, GET /status reports the
// active or most recent run, GET /runs lists history.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/titanous/json5"

	"outreach-backend/lib/configutil"
	"outreach-backend/lib/scrapers/athletics"
	"outreach-backend/lib/serviceutil"
	"outreach-backend/lib/telemetry"
	"outreach-backend/lib/timezone"
	"outreach-backend/services/contactcache"
	"outreach-backend/services/contacts"
	"outreach-backend/services/directory"
	"outreach-backend/services/matchstore"
	matchdb "outreach-backend/services/matchstore/db"
)

type runState struct {
	mu      sync.Mutex
	running bool

	RunID      string           `json:"run_id,omitempty"`
	StartedAt  string           `json:"started_at,omitempty"`
	FinishedAt string           `json:"finished_at,omitempty"`
	Report     *contacts.Report `json:"report,omitempty"`
	Err        string           `json:"error,omitempty"`
}

type daemon struct {
	// process-lifetime context, cancelled on shutdown signals
	ctx      context.Context
	config   OutreachConfig
	pipeline *contacts.Service
	store    matchstore.Service
	state    *runState
}

func (d *daemon) readRequests() ([]contacts.Request, error) {
	raw, err := os.ReadFile(d.config.TeamsFile)
	if err != nil {
		return nil, err
	}
	var requests []contacts.Request
	err = json5.Unmarshal(raw, &requests)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (d *daemon) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	d.state.mu.Lock()
	if d.state.running {
		d.state.mu.Unlock()
		http.Error(w, "a run is already in progress", http.StatusConflict)
		return
	}

	requests, err := d.readRequests()
	if err != nil {
		d.state.mu.Unlock()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d.state.running = true
	d.state.RunID = ""
	d.state.StartedAt = timezone.Now().Format(time.RFC3339)
	d.state.FinishedAt = ""
	d.state.Report = nil
	d.state.Err = ""
	d.state.mu.Unlock()

	// the pipeline is deliberately sequential and slow; run it out of
	// band and let /status report progress
	go d.run(requests)

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"teams": len(requests),
	})
}

func (d *daemon) run(requests []contacts.Request) {
	ctx := d.ctx
	startedAt := timezone.Now().Unix()

	report := d.pipeline.Process(ctx, requests)
	runID, err := d.store.RecordReport(ctx, startedAt, report)

	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	d.state.running = false
	d.state.FinishedAt = timezone.Now().Format(time.RFC3339)
	d.state.Report = &report
	d.state.RunID = runID
	if err != nil {
		d.state.Err = err.Error()
		slog.Error("failed to record run", "err", err.Error())
	}
}

func (d *daemon) handleStatus(w http.ResponseWriter, r *http.Request) {
	d.state.mu.Lock()
	defer d.state.mu.Unlock()

	w.Header().Set("content-type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"running":     d.state.running,
		"run_id":      d.state.RunID,
		"started_at":  d.state.StartedAt,
		"finished_at": d.state.FinishedAt,
		"report":      d.state.Report,
		"error":       d.state.Err,
	})
}

func (d *daemon) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := d.store.ListRuns(r.Context(), 20)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[OutreachConfig]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8220
	}
	if config.CacheDir == "" {
		config.CacheDir = "contact-cache"
	}
	if config.TeamsFile == "" {
		config.TeamsFile = "teams.json5"
	}

	otel, err := telemetry.SetupFromEnv(ctx, "outreachd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer otel.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	slog.Info("opening database...")
	database, err := config.Libsql.OpenDB(matchdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	dir, err := directory.NewService()
	if err != nil {
		serviceutil.Fatal("failed to load institution directory", err)
	}
	cache, err := contactcache.NewService(config.CacheDir)
	if err != nil {
		serviceutil.Fatal("failed to open contact cache", err)
	}
	fetcher := athletics.NewClient(athletics.ClientOptions{
		MinDelay: time.Second * 2,
		Jitter:   time.Second,
	})

	d := &daemon{
		ctx:      ctx,
		config:   config,
		pipeline: contacts.NewService(dir, cache, fetcher),
		store:    matchstore.NewService(database),
		state:    &runState{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/trigger", d.handleTrigger)
	mux.HandleFunc("/status", d.handleStatus)
	mux.HandleFunc("/runs", d.handleRuns)

	serviceutil.StartHttpServer(config.Port, mux)
}
