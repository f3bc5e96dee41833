// Package contacts runs the end-to-end contact discovery pipeline:
// resolve each school to its athletics site, find the coaching staff
// page, extract staff, cache the result for the academic year and
// select one validated contact per team.
package contacts

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"outreach-backend/lib/scrapers/athletics"
	"outreach-backend/lib/season"
	"outreach-backend/lib/timezone"
	"outreach-backend/services/contactcache"
	"outreach-backend/services/directory"
)

var tracer = otel.Tracer("outreach.services.contacts")

// Request names one team to find a contact for. Gender may be left
// unknown; single-gender sports fill it in and dual-gender sports
// fall back to trying both URL variants.
type Request struct {
	School string           `json:"school"`
	Sport  string           `json:"sport"`
	Gender athletics.Gender `json:"gender,omitempty"`
}

// Result is the pipeline outcome for one request. Err is set when the
// unit failed outright (school unknown, site unreachable); a unit
// that scraped fine but found nobody reachable has Selected == false.
type Result struct {
	Request    Request                 `json:"request"`
	School     string                  `json:"school,omitempty"`
	SiteURL    string                  `json:"site_url,omitempty"`
	Confidence directory.Confidence    `json:"confidence,omitempty"`
	Platform   athletics.Platform      `json:"platform,omitempty"`
	SourceURL  string                  `json:"source_url,omitempty"`
	FromCache  bool                    `json:"from_cache"`
	StaffCount int                     `json:"staff_count"`
	Staff      []athletics.StaffMember `json:"staff,omitempty"`
	Selected   bool                    `json:"selected"`
	Selection  Selection               `json:"selection,omitempty"`
	Issues     []Issue                 `json:"issues,omitempty"`
	Err        string                  `json:"error,omitempty"`
}

// Report is what a full pipeline run hands back.
type Report struct {
	Results   []Result `json:"results"`
	Total     int      `json:"total"`
	Selected  int      `json:"selected"`
	NoContact int      `json:"no_contact"`
	Failed    int      `json:"failed"`
}

type Service struct {
	directory directory.Service
	cache     contactcache.Service
	fetcher   athletics.Fetcher
	extractor *athletics.Extractor
	log       *slog.Logger

	// platform classifications are stable per site, memoized for the
	// lifetime of the service so multi-sport runs classify once
	platforms map[string]athletics.Platform
}

func NewService(dir directory.Service, cache contactcache.Service, fetcher athletics.Fetcher) *Service {
	return &Service{
		directory: dir,
		cache:     cache,
		fetcher:   fetcher,
		extractor: athletics.NewExtractor(fetcher),
		log:       slog.Default().With(slog.String("component", "contacts")),
		platforms: map[string]athletics.Platform{},
	}
}

func (s *Service) platform(ctx context.Context, rootURL string) athletics.Platform {
	if platform, ok := s.platforms[rootURL]; ok {
		return platform
	}
	platform := athletics.Classify(ctx, s.fetcher, rootURL)
	s.platforms[rootURL] = platform
	return platform
}

// Process works through requests strictly in order. One school at a
// time, one page at a time: athletics sites throttle aggressively and
// a polite crawl finishes; a parallel one gets blocked.
func (s *Service) Process(ctx context.Context, requests []Request) Report {
	ctx, span := tracer.Start(ctx, "Process", trace.WithAttributes(
		attribute.Int("requests", len(requests)),
	))
	defer span.End()

	report := Report{Total: len(requests)}
	for _, request := range requests {
		result := s.processOne(ctx, request)
		report.Results = append(report.Results, result)

		switch {
		case result.Err != "":
			report.Failed++
		case result.Selected:
			report.Selected++
		default:
			report.NoContact++
		}
	}

	s.log.InfoContext(
		ctx, "pipeline run finished",
		slog.Int("total", report.Total),
		slog.Int("selected", report.Selected),
		slog.Int("no_contact", report.NoContact),
		slog.Int("failed", report.Failed),
	)
	return report
}

func (s *Service) processOne(ctx context.Context, request Request) Result {
	ctx, span := tracer.Start(ctx, "processOne", trace.WithAttributes(
		attribute.String("school", request.School),
		attribute.String("sport", request.Sport),
	))
	defer span.End()

	result := Result{Request: request}

	institution, confidence, err := s.directory.Resolve(ctx, request.School)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	result.School = institution.Name
	result.SiteURL = institution.URL
	result.Confidence = confidence

	gender := athletics.InferGender(request.Sport, request.Gender)
	staff, fromCache, sourceURL, err := s.staffFor(ctx, request, institution, gender, &result)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	result.FromCache = fromCache
	result.SourceURL = sourceURL
	result.StaffCount = len(staff)
	result.Staff = staff

	selection, ok := SelectContact(staff)
	result.Selection = selection
	result.Selected = ok
	if ok {
		result.Issues = ValidateContact(institution.Name, selection.Member)
	}

	s.log.InfoContext(
		ctx, "processed team",
		slog.String("school", institution.Name),
		slog.String("sport", request.Sport),
		slog.Bool("from_cache", fromCache),
		slog.Int("staff", len(staff)),
		slog.Bool("selected", ok),
		slog.String("quality", string(selection.Quality)),
	)
	return result
}

func (s *Service) staffFor(
	ctx context.Context,
	request Request,
	institution directory.Institution,
	gender athletics.Gender,
	result *Result,
) ([]athletics.StaffMember, bool, string, error) {
	year := season.Current(timezone.Now())

	cached, err := s.cache.Lookup(ctx, institution.Name, gender, request.Sport)
	if err == nil && !contactcache.IsStale(cached, year) {
		return cached.Staff, true, cached.SourceURL, nil
	}
	if err != nil && !errors.Is(err, contactcache.ErrMiss) {
		return nil, false, "", err
	}

	platform := s.platform(ctx, institution.URL)
	result.Platform = platform

	candidates := athletics.CandidateStaffURLs(institution.URL, platform, request.Sport, gender)
	extracted, err := s.extractor.ExtractFromCandidates(ctx, candidates, request.Sport, GuessDomain(institution.Name))
	if err != nil {
		return nil, false, "", err
	}

	record := contactcache.Record{
		School:    institution.Name,
		Sport:     request.Sport,
		Gender:    gender,
		SourceURL: extracted.SourceURL,
		Staff:     extracted.Staff,
	}
	err = s.cache.Put(ctx, record)
	if err != nil {
		s.log.WarnContext(
			ctx, "failed to cache staff",
			slog.String("school", institution.Name),
			slog.String("sport", request.Sport),
			slog.String("err", err.Error()),
		)
	}

	return extracted.Staff, false, extracted.SourceURL, nil
}
