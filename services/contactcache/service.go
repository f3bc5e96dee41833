// Package contactcache persists scraped coaching staffs as one JSON
// file per school/sport so reruns inside the same academic year skip
// the network entirely. Files are plain JSON on purpose: operators
// hand-inspect and hand-correct them.
package contactcache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"outreach-backend/lib/scrapers/athletics"
	"outreach-backend/lib/season"
	"outreach-backend/lib/textutil"
	"outreach-backend/lib/timezone"
)

var tracer = otel.Tracer("outreach.services.contactcache")

var ErrMiss = errors.New("contact cache miss")

// Record is the on-disk cache entry. ScrapedAt places the record in
// an academic year; SourceURL records which candidate URL won.
type Record struct {
	School    string                  `json:"school"`
	Sport     string                  `json:"sport"`
	Gender    athletics.Gender        `json:"gender,omitempty"`
	SourceURL string                  `json:"source_url,omitempty"`
	ScrapedAt string                  `json:"scraped_at"`
	Staff     []athletics.StaffMember `json:"staff"`
}

const timestampLayout = "2006-01-02T15:04:05"

func (r Record) scrapedAt() (time.Time, bool) {
	parsed, err := time.ParseInLocation(timestampLayout, r.ScrapedAt, timezone.Location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

type Service struct {
	dir string
	log *slog.Logger
}

func NewService(dir string) (Service, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return Service{}, err
	}
	return Service{
		dir: dir,
		log: slog.Default().With(slog.String("component", "contactcache")),
	}, nil
}

func (s Service) path(school string, gender athletics.Gender, sport string) string {
	key := textutil.FileKey(school, string(gender), sport)
	return filepath.Join(s.dir, key+".json")
}

func (s Service) read(path string) (Record, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Record{}, ErrMiss
	}
	if err != nil {
		return Record{}, err
	}
	var record Record
	err = json.Unmarshal(raw, &record)
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

// Get returns the cached record for the exact school/gender/sport
// key, without judging freshness.
func (s Service) Get(ctx context.Context, school string, gender athletics.Gender, sport string) (Record, error) {
	_, span := tracer.Start(ctx, "Get")
	defer span.End()

	return s.read(s.path(school, gender, sport))
}

// Lookup checks the gender-qualified key first and falls back to the
// genderless key, covering records written before a gender was known.
func (s Service) Lookup(ctx context.Context, school string, gender athletics.Gender, sport string) (Record, error) {
	ctx, span := tracer.Start(ctx, "Lookup", trace.WithAttributes(
		attribute.String("school", school),
		attribute.String("sport", sport),
	))
	defer span.End()

	record, err := s.Get(ctx, school, gender, sport)
	if err == nil || gender == athletics.GenderUnknown {
		return record, err
	}
	if !errors.Is(err, ErrMiss) {
		return Record{}, err
	}
	return s.Get(ctx, school, athletics.GenderUnknown, sport)
}

func (s Service) Put(ctx context.Context, record Record) error {
	_, span := tracer.Start(ctx, "Put")
	defer span.End()

	if record.ScrapedAt == "" {
		record.ScrapedAt = timezone.Now().Format(timestampLayout)
	}

	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	path := s.path(record.School, record.Gender, record.Sport)
	err = os.WriteFile(path, raw, 0644)
	if err != nil {
		return err
	}

	s.log.DebugContext(
		ctx, "cached staff",
		slog.String("path", path),
		slog.Int("staff", len(record.Staff)),
	)
	return nil
}

// IsStale reports whether a record must be re-scraped: empty staff
// lists and email-less staff lists are retried every run, and any
// record from a previous academic year is dead weight since staffs
// turn over between seasons.
func IsStale(record Record, year season.AcademicYear) bool {
	if len(record.Staff) == 0 {
		return true
	}

	hasEmail := false
	for _, member := range record.Staff {
		if member.HasEmail() {
			hasEmail = true
			break
		}
	}
	if !hasEmail {
		return true
	}

	scrapedAt, ok := record.scrapedAt()
	if !ok {
		return true
	}
	return !year.Contains(scrapedAt)
}
