package athletics

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform identifies the CMS an athletics site runs on. The two
// vendors below cover nearly all NCAA programs; anything else falls
// back to generic extraction.
type Platform string

const (
	PlatformSidearm Platform = "sidearm"
	PlatformPresto  Platform = "presto"
	PlatformUnknown Platform = "unknown"
)

// Ordered: Sidearm markers are checked before Presto so that pages
// embedding both vendors' assets classify as Sidearm.
var platformSignatures = []struct {
	platform Platform
	markers  []string
}{
	{
		platform: PlatformSidearm,
		markers: []string{
			"sidearm.sites",
			"sidearmstats",
			"sidearm.nextgen",
			"sidearm-legacy",
			"data-sidearm",
			"sidearm sports",
		},
	},
	{
		platform: PlatformPresto,
		markers: []string{
			"prestosports.com",
			"presto-sports",
			"prestoapi",
			"prestocms",
		},
	},
}

// ClassifyDocument scans a fetched homepage for vendor fingerprints
// in markup, script URLs and meta generator tags.
func ClassifyDocument(doc *goquery.Document) Platform {
	html, err := doc.Html()
	if err != nil {
		return PlatformUnknown
	}
	html = strings.ToLower(html)

	for _, sig := range platformSignatures {
		for _, marker := range sig.markers {
			if strings.Contains(html, marker) {
				return sig.platform
			}
		}
	}
	return PlatformUnknown
}

// Classify fetches the institution's athletics homepage and
// classifies it. Fetch failures degrade to PlatformUnknown rather
// than aborting, unknown still yields usable generic URL guesses.
func Classify(ctx context.Context, fetcher Fetcher, rootURL string) Platform {
	doc, err := fetcher.Get(ctx, rootURL)
	if err != nil {
		return PlatformUnknown
	}
	return ClassifyDocument(doc)
}
