// Package directory resolves school names as they appear in
// schedules and spreadsheets to athletics site root URLs.
package directory

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/titanous/json5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"outreach-backend/lib/textutil"
)

var tracer = otel.Tracer("outreach.services.directory")

//go:embed institutions.json
var institutionsJSON []byte

var ErrNotFound = errors.New("institution not found")

type Institution struct {
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	Aliases []string `json:"aliases,omitempty"`
}

// Confidence grades how the lookup matched: exact alias hits are
// high, substring matches are medium. Recorded alongside results so
// a human can audit fuzzy resolutions later.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

type Service struct {
	institutions []Institution
	byAlias      map[string]int
	log          *slog.Logger
}

func NewService() (Service, error) {
	return NewServiceFromJSON(institutionsJSON)
}

// NewServiceFromJSON builds a directory from a caller-supplied
// institution list, used by deployments that maintain their own.
func NewServiceFromJSON(raw []byte) (Service, error) {
	var institutions []Institution
	err := json5.Unmarshal(raw, &institutions)
	if err != nil {
		return Service{}, err
	}

	byAlias := map[string]int{}
	for i, inst := range institutions {
		byAlias[textutil.NormalizeSchool(inst.Name)] = i
		for _, alias := range inst.Aliases {
			byAlias[textutil.NormalizeSchool(alias)] = i
		}
	}

	return Service{
		institutions: institutions,
		byAlias:      byAlias,
		log:          slog.Default().With(slog.String("component", "directory")),
	}, nil
}

func (s Service) Institutions() []Institution {
	return s.institutions
}

// Resolve maps a school name to its athletics site. Exact alias
// matches win over substring matches; the longest matching alias
// breaks substring ties so "connecticut college" never lands on a
// shorter "connecticut" alias of another school.
func (s Service) Resolve(ctx context.Context, school string) (Institution, Confidence, error) {
	ctx, span := tracer.Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("school", school),
	))
	defer span.End()

	normalized := textutil.NormalizeSchool(school)
	if normalized == "" {
		return Institution{}, "", ErrNotFound
	}

	if idx, ok := s.byAlias[normalized]; ok {
		span.SetAttributes(attribute.String("confidence", string(ConfidenceHigh)))
		return s.institutions[idx], ConfidenceHigh, nil
	}

	bestLen := 0
	bestIdx := -1
	for alias, idx := range s.byAlias {
		if !strings.Contains(normalized, alias) && !strings.Contains(alias, normalized) {
			continue
		}
		if len(alias) > bestLen {
			bestLen = len(alias)
			bestIdx = idx
		}
	}
	if bestIdx >= 0 {
		span.SetAttributes(attribute.String("confidence", string(ConfidenceMedium)))
		s.log.InfoContext(
			ctx, "resolved school by substring",
			slog.String("school", school),
			slog.String("matched", s.institutions[bestIdx].Name),
		)
		return s.institutions[bestIdx], ConfidenceMedium, nil
	}

	s.log.WarnContext(
		ctx, "school not in directory",
		slog.String("school", school),
		slog.String("nearest", s.nearest(normalized)),
	)
	return Institution{}, "", ErrNotFound
}

// nearest names the closest known alias for not-found log lines, so
// typos in input spreadsheets are easy to spot.
func (s Service) nearest(normalized string) string {
	best := ""
	bestScore := 0.0
	for alias := range s.byAlias {
		score := matchr.JaroWinkler(normalized, alias, false)
		if score > bestScore {
			bestScore = score
			best = alias
		}
	}
	return best
}
