package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// trailing parenthetical markers on opponent names coming out of
// schedule scrapes, e.g. "Merrimack (DH)" or "Tufts (Exh.)"
var trailingParenRegex = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// NormalizeSchool lowercases, trims, collapses whitespace and strips
// trailing parenthetical exhibition/doubleheader markers so schedule
// opponent names line up with directory aliases.
func NormalizeSchool(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = trailingParenRegex.ReplaceAllString(name, "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.Trim(name, " ")
}

func NormalizeSport(sport string) string {
	sport = strings.ToLower(strings.Trim(sport, " \n\t"))
	return whitespaceRegex.ReplaceAllString(sport, " ")
}

// SportSlug turns a sport name into a URL path fragment,
// e.g. "Ice Hockey" -> "ice-hockey", "Track & Field" -> "track-and-field".
func SportSlug(sport string) string {
	slug := NormalizeSport(sport)
	slug = strings.ReplaceAll(slug, "&", "and")
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// FileKey builds the cache-file stem for a school/sport pair,
// e.g. ("Saint Anselm", "Ice Hockey") -> "saint_anselm_ice_hockey".
// gender is included as a middle segment when known.
func FileKey(school, gender, sport string) string {
	school = strings.ReplaceAll(NormalizeSchool(school), "'", "")
	school = strings.ReplaceAll(school, " ", "_")
	sport = strings.ReplaceAll(NormalizeSport(sport), "&", "and")
	sport = strings.ReplaceAll(sport, " ", "_")
	if gender != "" {
		return school + "_" + strings.ToLower(gender) + "_" + sport
	}
	return school + "_" + sport
}

func MatchName(name string, matchers []string) bool {
	name = strings.ToLower(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
