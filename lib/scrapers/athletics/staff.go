package athletics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("outreach.lib.scrapers.athletics")

// StaffMember is one row of a coaching staff listing. Email and Phone
// may be empty when the listing withheld them.
type StaffMember struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Sport  string `json:"sport"`
	BioURL string `json:"bio_url,omitempty"`
}

func (m StaffMember) HasEmail() bool {
	return m.Email != ""
}

// StateResult records one extraction strategy's attempt for the trace.
type StateResult struct {
	State     string `json:"state"`
	Found     int    `json:"found"`
	WithEmail int    `json:"with_email"`
}

// ExtractResult is the outcome of running the extraction cascade
// against one staff page URL.
type ExtractResult struct {
	Staff     []StaffMember `json:"staff"`
	SourceURL string        `json:"source_url"`
	Trace     []StateResult `json:"trace"`
}

func (r ExtractResult) EmailCount() int {
	count := 0
	for _, m := range r.Staff {
		if m.HasEmail() {
			count++
		}
	}
	return count
}

// Success reports whether extraction produced at least one staff
// member with an email address.
func (r ExtractResult) Success() bool {
	return r.EmailCount() > 0
}

type extractSession struct {
	fetcher  Fetcher
	staffURL string
	sport    string
	// expected institutional email domain, "" when unknown; used to
	// rank addresses harvested off bio pages
	domain string
	doc    *goquery.Document

	staff []StaffMember

	// lazily fetched by the roster states
	rosterDoc *goquery.Document
	rosterURL string
}

type extractState struct {
	name string
	// gate decides whether the state applies given what earlier
	// states produced
	gate func(s *extractSession) bool
	run  func(ctx context.Context, s *extractSession) []StaffMember
}

func anyStaff(s *extractSession) bool    { return len(s.staff) > 0 }
func noStaff(s *extractSession) bool     { return len(s.staff) == 0 }
func noEmails(s *extractSession) bool    { return countEmails(s.staff) == 0 }
func partialOnly(s *extractSession) bool { return anyStaff(s) && noEmails(s) }

// Strategies in decreasing order of structure: structured tables,
// then card grids, then per-person bio pages reached from names the
// earlier states surfaced, then the roster page's coaching section,
// then raw bio links off the roster. The cascade stops at the first
// state leaving at least one email behind.
var extractStates = []extractState{
	{
		name: "table",
		gate: func(*extractSession) bool { return true },
		run:  extractFromTables,
	},
	{
		name: "cards",
		gate: noStaff,
		run:  extractFromCards,
	},
	{
		name: "bio-enrichment",
		gate: partialOnly,
		run:  enrichFromBios,
	},
	{
		name: "directory-enrichment",
		gate: partialOnly,
		run:  enrichFromStaffDirectory,
	},
	{
		name: "roster",
		gate: noStaff,
		run:  extractFromRoster,
	},
	{
		name: "roster-bios",
		gate: noStaff,
		run:  extractFromRosterBios,
	},
}

type Extractor struct {
	fetcher Fetcher
	log     *slog.Logger
}

func NewExtractor(fetcher Fetcher) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		log:     slog.Default().With(slog.String("component", "athletics.extractor")),
	}
}

func countEmails(staff []StaffMember) int {
	count := 0
	for _, m := range staff {
		if m.HasEmail() {
			count++
		}
	}
	return count
}

// Extract runs the cascade against one staff page. domain is the
// institution's expected email domain, "" when unknown. The returned
// error is non-nil only for fetch failures of the staff page itself; a
// page that parsed to nothing yields an empty result and a full trace.
func (e *Extractor) Extract(ctx context.Context, staffURL, sport, domain string) (ExtractResult, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	doc, err := e.fetcher.Get(ctx, staffURL)
	if err != nil {
		return ExtractResult{SourceURL: staffURL}, err
	}

	session := &extractSession{
		fetcher:  e.fetcher,
		staffURL: staffURL,
		sport:    sport,
		domain:   domain,
		doc:      doc,
	}

	result := ExtractResult{SourceURL: staffURL}
	for _, state := range extractStates {
		if !state.gate(session) {
			continue
		}

		staff := state.run(ctx, session)
		if len(staff) > 0 {
			session.staff = staff
		}
		result.Trace = append(result.Trace, StateResult{
			State:     state.name,
			Found:     len(session.staff),
			WithEmail: countEmails(session.staff),
		})

		e.log.DebugContext(
			ctx, "extraction state ran",
			slog.String("url", staffURL),
			slog.String("state", state.name),
			slog.Int("staff", len(session.staff)),
			slog.Int("emails", countEmails(session.staff)),
		)

		if countEmails(session.staff) > 0 {
			break
		}
	}

	result.Staff = session.staff
	for i := range result.Staff {
		if result.Staff[i].Sport == "" {
			result.Staff[i].Sport = sport
		}
	}
	return result, nil
}

// ExtractFromCandidates walks candidate URLs in order, stopping at
// the first success. Fetch failures and empty pages both advance to
// the next candidate; the best partial result survives as a fallback
// when nothing succeeds.
func (e *Extractor) ExtractFromCandidates(ctx context.Context, candidates []string, sport, domain string) (ExtractResult, error) {
	ctx, span := tracer.Start(ctx, "ExtractFromCandidates")
	defer span.End()

	var best ExtractResult
	var fetchErrs []error
	fetched := false

	for _, candidate := range candidates {
		result, err := e.Extract(ctx, candidate, sport, domain)
		if err != nil {
			e.log.WarnContext(
				ctx, "candidate staff url failed",
				slog.String("url", candidate),
				slog.String("err", err.Error()),
			)
			fetchErrs = append(fetchErrs, err)
			continue
		}
		fetched = true

		if result.Success() {
			return result, nil
		}
		if len(result.Staff) > len(best.Staff) {
			best = result
		}
	}

	if !fetched {
		return best, errors.Join(fetchErrs...)
	}
	return best, nil
}
