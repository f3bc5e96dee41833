package athletics

import (
	"net/url"
	"regexp"
	"strings"

	"outreach-backend/lib/textutil"
)

type Gender string

const (
	GenderMen     Gender = "Men"
	GenderWomen   Gender = "Women"
	GenderUnknown Gender = ""
)

// Sports that only field one gender at the college level; a bare
// un-prefixed slug is the canonical path for these.
var inherentGenders = map[string]Gender{
	"baseball":     GenderMen,
	"football":     GenderMen,
	"softball":     GenderWomen,
	"field hockey": GenderWomen,
	"volleyball":   GenderWomen,
}

// InferGender fills in a missing gender from the sport itself where
// the sport implies one.
func InferGender(sport string, gender Gender) Gender {
	if gender != GenderUnknown {
		return gender
	}
	return inherentGenders[textutil.NormalizeSport(sport)]
}

// Presto sites key team pages on short sport codes rather than slugs.
var prestoSportCodes = map[string]struct{ men, women string }{
	"baseball":        {"bsb", ""},
	"softball":        {"", "sball"},
	"basketball":      {"mbkb", "wbkb"},
	"ice hockey":      {"mice", "wice"},
	"lacrosse":        {"mlax", "wlax"},
	"soccer":          {"msoc", "wsoc"},
	"volleyball":      {"mvball", "wvball"},
	"field hockey":    {"", "fh"},
	"tennis":          {"mten", "wten"},
	"golf":            {"mgolf", "wgolf"},
	"swimming":        {"mswim", "wswim"},
	"cross country":   {"mxc", "wxc"},
	"track and field": {"mtrack", "wtrack"},
	"rowing":          {"mcrew", "wcrew"},
	"football":        {"fball", ""},
}

var seasonSegmentRegex = regexp.MustCompile(`/\d{4}-\d{2}(/|$)`)

// TeamURL strips the trailing coaches/staff segment from a staff page
// URL, giving the team home used to derive roster URLs.
func TeamURL(staffURL string) string {
	out := strings.TrimSuffix(staffURL, "/")
	out = strings.TrimSuffix(out, "/coaches")
	out = strings.TrimSuffix(out, "/staff")
	return out
}

// CoachesURL turns an arbitrary team page URL into its coaches page,
// dropping /index suffixes and Presto season segments (/2024-25/)
// which otherwise pin the page to a stale year.
func CoachesURL(teamURL string) string {
	out := strings.TrimSuffix(teamURL, "/")
	out = strings.TrimSuffix(out, "/index")
	out = seasonSegmentRegex.ReplaceAllString(out, "/")
	out = strings.TrimSuffix(out, "/")
	if strings.HasSuffix(out, "/coaches") {
		return out
	}
	return out + "/coaches"
}

// CandidateStaffURLs returns staff page URL guesses in decreasing
// order of likelihood for the given platform. Callers try them in
// order and stop at the first page that yields contacts.
func CandidateStaffURLs(rootURL string, platform Platform, sport string, gender Gender) []string {
	root := strings.TrimSuffix(rootURL, "/")
	normalized := textutil.NormalizeSport(sport)
	gender = InferGender(sport, gender)

	switch platform {
	case PlatformPresto:
		return prestoStaffURLs(root, normalized, gender)
	case PlatformSidearm:
		return sidearmStaffURLs(root, normalized, gender)
	default:
		return []string{
			root + "/coaches",
			root + "/staff",
		}
	}
}

func sidearmStaffURLs(root, sport string, gender Gender) []string {
	slug := textutil.SportSlug(sport)
	base := root + "/sports/"

	// Single-gender sports live at the bare slug on nearly every
	// Sidearm site; prefixed variants are rare legacy layouts.
	if _, inherent := inherentGenders[sport]; inherent {
		var prefixed []string
		switch gender {
		case GenderWomen:
			prefixed = []string{"womens-" + slug, "w-" + slug}
		default:
			prefixed = []string{"mens-" + slug, "m-" + slug}
		}
		out := []string{base + slug + "/coaches"}
		for _, v := range prefixed {
			out = append(out, base+v+"/coaches")
		}
		return out
	}

	var variants []string
	switch gender {
	case GenderMen:
		variants = []string{"mens-" + slug, "m-" + slug, slug}
	case GenderWomen:
		variants = []string{"womens-" + slug, "w-" + slug, slug}
	default:
		variants = []string{
			"womens-" + slug, "mens-" + slug,
			"w-" + slug, "m-" + slug,
			slug,
		}
	}

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		out = append(out, base+v+"/coaches")
	}
	return out
}

func prestoStaffURLs(root, sport string, gender Gender) []string {
	var codes []string
	if entry, ok := prestoSportCodes[sport]; ok {
		switch gender {
		case GenderMen:
			if entry.men != "" {
				codes = append(codes, entry.men)
			}
		case GenderWomen:
			if entry.women != "" {
				codes = append(codes, entry.women)
			}
		default:
			if entry.women != "" {
				codes = append(codes, entry.women)
			}
			if entry.men != "" {
				codes = append(codes, entry.men)
			}
		}
	}

	out := make([]string, 0, len(codes)+1)
	for _, code := range codes {
		out = append(out, root+"/sports/"+code+"/coaches")
	}
	// Some Presto sites use Sidearm-style slugs anyway.
	out = append(out, root+"/sports/"+textutil.SportSlug(sport)+"/coaches")
	return out
}

// resolveHref makes a possibly-relative href absolute against the
// page it appeared on.
func resolveHref(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
