package athletics

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Get(ctx context.Context, url string) (*goquery.Document, error) {
	f.calls = append(f.calls, url)
	html, ok := f.pages[url]
	if !ok {
		return nil, &FetchError{URL: url, StatusCode: 404}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestClassifyDocument(t *testing.T) {
	cases := []struct {
		name     string
		html     string
		expected Platform
	}{
		{
			name:     "sidearm script",
			html:     `<html><head><script src="https://sidearm.sites.s3.amazonaws.com/x.js"></script></head></html>`,
			expected: PlatformSidearm,
		},
		{
			name:     "sidearm meta generator",
			html:     `<html><head><meta name="generator" content="Sidearm Sports"></head></html>`,
			expected: PlatformSidearm,
		},
		{
			name:     "presto",
			html:     `<html><body><a href="https://www.prestosports.com">powered</a></body></html>`,
			expected: PlatformPresto,
		},
		{
			name:     "both vendors prefers sidearm",
			html:     `<div data-sidearm="1"><a href="https://prestosports.com"></a></div>`,
			expected: PlatformSidearm,
		},
		{
			name:     "neither",
			html:     `<html><body><h1>Athletics</h1></body></html>`,
			expected: PlatformUnknown,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, ClassifyDocument(mustDoc(t, c.html)))
		})
	}
}

func TestCandidateStaffURLs(t *testing.T) {
	root := "https://merrimackathletics.com"

	cases := []struct {
		name     string
		platform Platform
		sport    string
		gender   Gender
		expected []string
	}{
		{
			name:     "sidearm single gender sport bare slug first",
			platform: PlatformSidearm,
			sport:    "Baseball",
			gender:   GenderUnknown,
			expected: []string{
				root + "/sports/baseball/coaches",
				root + "/sports/mens-baseball/coaches",
				root + "/sports/m-baseball/coaches",
			},
		},
		{
			name:     "sidearm womens basketball",
			platform: PlatformSidearm,
			sport:    "Basketball",
			gender:   GenderWomen,
			expected: []string{
				root + "/sports/womens-basketball/coaches",
				root + "/sports/w-basketball/coaches",
				root + "/sports/basketball/coaches",
			},
		},
		{
			name:     "sidearm unknown gender tries both",
			platform: PlatformSidearm,
			sport:    "Ice Hockey",
			gender:   GenderUnknown,
			expected: []string{
				root + "/sports/womens-ice-hockey/coaches",
				root + "/sports/mens-ice-hockey/coaches",
				root + "/sports/w-ice-hockey/coaches",
				root + "/sports/m-ice-hockey/coaches",
				root + "/sports/ice-hockey/coaches",
			},
		},
		{
			name:     "presto short code",
			platform: PlatformPresto,
			sport:    "Baseball",
			gender:   GenderUnknown,
			expected: []string{
				root + "/sports/bsb/coaches",
				root + "/sports/baseball/coaches",
			},
		},
		{
			name:     "unknown platform generic paths",
			platform: PlatformUnknown,
			sport:    "Baseball",
			gender:   GenderUnknown,
			expected: []string{
				root + "/coaches",
				root + "/staff",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CandidateStaffURLs(root, c.platform, c.sport, c.gender)
			require.Equal(t, c.expected, got)
		})
	}
}

func TestCoachesURL(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{
			in:       "https://x.edu/sports/bsb/index",
			expected: "https://x.edu/sports/bsb/coaches",
		},
		{
			in:       "https://x.edu/sports/bsb/2024-25/index",
			expected: "https://x.edu/sports/bsb/coaches",
		},
		{
			in:       "https://x.edu/sports/baseball/coaches",
			expected: "https://x.edu/sports/baseball/coaches",
		},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, CoachesURL(c.in), c.in)
	}
}

func TestInferGender(t *testing.T) {
	require.Equal(t, GenderMen, InferGender("Baseball", GenderUnknown))
	require.Equal(t, GenderWomen, InferGender("Softball", GenderUnknown))
	require.Equal(t, GenderWomen, InferGender("Field Hockey", GenderUnknown))
	require.Equal(t, GenderUnknown, InferGender("Basketball", GenderUnknown))
	require.Equal(t, GenderWomen, InferGender("Baseball", GenderWomen))
}

const staffTablePage = `<html><body>
<table class="sidearm-table">
<tr><th>Name</th><th>Title</th><th>Email</th><th>Phone</th></tr>
<tr>
	<td><a href="/sports/baseball/coaches/joe-gambino">Joe Gambino</a></td>
	<td>Head Coach</td>
	<td><a href="mailto:gambinoj@merrimack.edu">Email</a></td>
	<td>978-837-5000</td>
</tr>
<tr>
	<td><a href="/sports/baseball/coaches/nick-cordaro">Nick Cordaro</a></td>
	<td>Director of Baseball Operations</td>
	<td><a href="mailto:cordaron@merrimack.edu">Email</a></td>
	<td></td>
</tr>
</table>
</body></html>`

func TestExtractTableStopsCascade(t *testing.T) {
	url := "https://merrimackathletics.com/sports/baseball/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{url: staffTablePage}}

	result, err := NewExtractor(fetcher).Extract(context.Background(), url, "Baseball", "")
	require.NoError(t, err)
	require.True(t, result.Success())

	diff := cmp.Diff(
		[]StaffMember{
			{
				Name:   "Joe Gambino",
				Title:  "Head Coach",
				Email:  "gambinoj@merrimack.edu",
				Phone:  "978-837-5000",
				Sport:  "Baseball",
				BioURL: "https://merrimackathletics.com/sports/baseball/coaches/joe-gambino",
			},
			{
				Name:   "Nick Cordaro",
				Title:  "Director of Baseball Operations",
				Email:  "cordaron@merrimack.edu",
				Sport:  "Baseball",
				BioURL: "https://merrimackathletics.com/sports/baseball/coaches/nick-cordaro",
			},
		},
		result.Staff,
	)
	if diff != "" {
		t.Fatal(diff)
	}

	// first strategy succeeded, nothing else should have run or fetched
	require.Len(t, result.Trace, 1)
	require.Equal(t, "table", result.Trace[0].State)
	require.Len(t, fetcher.calls, 1)
}

const cardsPage = `<html><body>
<div class="coaches-content">
	<div class="card flex-fill">
		<h5 class="card-title"><a href="/coaches/jane-doe">Jane Doe</a></h5>
		<p class="card-text text-muted">Women's Soccer</p>
		<p class="card-text m-0">Head Coach</p>
		<a href="mailto:jdoe@school.edu">jdoe@school.edu</a>
	</div>
	<div class="card flex-fill">
		<h5 class="card-title"><a href="/coaches/amy-lin">Amy Lin</a></h5>
		<p class="card-text m-0">Assistant Coach</p>
		<a href="mailto:alin@school.edu">alin@school.edu</a>
	</div>
</div>
</body></html>`

func TestExtractCardsFallback(t *testing.T) {
	url := "https://school.edu/sports/wsoc/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{url: cardsPage}}

	result, err := NewExtractor(fetcher).Extract(context.Background(), url, "Soccer", "")
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Len(t, result.Staff, 2)
	require.Equal(t, "Jane Doe", result.Staff[0].Name)
	require.Equal(t, "Head Coach", result.Staff[0].Title)
	require.Equal(t, "jdoe@school.edu", result.Staff[0].Email)

	require.Len(t, result.Trace, 2)
	require.Equal(t, "table", result.Trace[0].State)
	require.Equal(t, "cards", result.Trace[1].State)
}

const namesOnlyTablePage = `<html><body>
<table class="sidearm-table">
<tr><th>Name</th><th>Title</th></tr>
<tr><td><a href="/coaches/joe-gambino">Joe Gambino</a></td><td>Head Coach</td></tr>
</table>
</body></html>`

const bioPage = `<html><body>
<h1>Joe Gambino</h1>
<p>Head Coach Joe Gambino can be reached at gambinoj@merrimack.edu or 978-837-5000.</p>
</body></html>`

func TestExtractBioEnrichment(t *testing.T) {
	url := "https://merrimackathletics.com/sports/baseball/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: namesOnlyTablePage,
		"https://merrimackathletics.com/coaches/joe-gambino": bioPage,
	}}

	result, err := NewExtractor(fetcher).Extract(context.Background(), url, "Baseball", "")
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Len(t, result.Staff, 1)
	require.Equal(t, "gambinoj@merrimack.edu", result.Staff[0].Email)
	require.Equal(t, "978-837-5000", result.Staff[0].Phone)

	states := []string{}
	for _, s := range result.Trace {
		states = append(states, s.State)
	}
	require.Equal(t, []string{"table", "bio-enrichment"}, states)
}

const crowdedBioPage = `<html><body>
<h1>Joe Gambino</h1>
<p>Before Merrimack, Gambino coached under Pat Doe (doep@bc.edu).</p>
<p>Contact: gambinoj@merrimack.edu</p>
</body></html>`

func TestExtractBioEnrichmentPrefersInstitutionDomain(t *testing.T) {
	url := "https://merrimackathletics.com/sports/baseball/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: namesOnlyTablePage,
		"https://merrimackathletics.com/coaches/joe-gambino": crowdedBioPage,
	}}

	result, err := NewExtractor(fetcher).Extract(context.Background(), url, "Baseball", "merrimack.edu")
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Equal(t, "gambinoj@merrimack.edu", result.Staff[0].Email)
}

const directoryStaffPage = `<html><body>
<table class="sidearm-table">
<tr><th>Name</th><th>Title</th></tr>
<tr><td>John Smith</td><td>Assistant Coach</td></tr>
</table>
</body></html>`

const staffDirectoryPage = `<html><body>
<table class="sidearm-table">
<tr><th>Name</th><th>Title</th><th>Email</th></tr>
<tr>
	<td>John A. Smith</td>
	<td>Assistant Baseball Coach</td>
	<td><a href="mailto:smithj@school.edu">smithj@school.edu</a></td>
</tr>
</table>
</body></html>`

func TestExtractStaffDirectoryEnrichment(t *testing.T) {
	url := "https://school.edu/sports/baseball/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: directoryStaffPage,
		"https://school.edu/staff-directory": staffDirectoryPage,
	}}

	result, err := NewExtractor(fetcher).Extract(context.Background(), url, "Baseball", "")
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Len(t, result.Staff, 1)
	require.Equal(t, "John Smith", result.Staff[0].Name)
	require.Equal(t, "smithj@school.edu", result.Staff[0].Email)

	states := []string{}
	for _, s := range result.Trace {
		states = append(states, s.State)
	}
	require.Equal(t, []string{"table", "bio-enrichment", "directory-enrichment"}, states)
}

const emptyStaffPage = `<html><body><p>Nothing to see.</p></body></html>`

const rosterPage = `<html><body>
<h2>2025 Roster</h2>
<h2>Coaching Staff</h2>
<table>
<tr><th>Name</th><th>Title</th><th>Email</th></tr>
<tr><td>Bob Roe</td><td>Head Coach</td><td>roe@school.edu</td></tr>
</table>
<h2>Support Staff</h2>
<table>
<tr><th>Name</th><th>Title</th><th>Email</th></tr>
<tr><td>Tim Trainer</td><td>Athletic Trainer</td><td>trainer@school.edu</td></tr>
</table>
</body></html>`

func TestExtractRosterFallback(t *testing.T) {
	url := "https://school.edu/sports/baseball/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: emptyStaffPage,
		"https://school.edu/sports/baseball/roster": rosterPage,
	}}

	result, err := NewExtractor(fetcher).Extract(context.Background(), url, "Baseball", "")
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Len(t, result.Staff, 1)
	require.Equal(t, "Bob Roe", result.Staff[0].Name)
	require.Equal(t, "roe@school.edu", result.Staff[0].Email)
}

func TestExtractFromCandidates(t *testing.T) {
	good := "https://school.edu/sports/baseball/coaches"
	fetcher := &fakeFetcher{pages: map[string]string{good: staffTablePage}}

	candidates := []string{
		"https://school.edu/sports/mens-baseball/coaches",
		good,
	}
	result, err := NewExtractor(fetcher).ExtractFromCandidates(context.Background(), candidates, "Baseball", "")
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Equal(t, good, result.SourceURL)
	require.Equal(t, candidates, fetcher.calls[:2])
}

func TestExtractFromCandidatesAllFail(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}

	_, err := NewExtractor(fetcher).ExtractFromCandidates(
		context.Background(),
		[]string{"https://school.edu/sports/x/coaches"},
		"Baseball", "",
	)
	require.Error(t, err)
}

func TestNameMatches(t *testing.T) {
	cases := []struct {
		a, b     string
		expected bool
	}{
		{"John Smith", "John Smith", true},
		{"John Smith", "John A. Smith", true},
		{"John Smith", "John Smith - Head Coach", true},
		{"John Smith", "Jane Jones", false},
		{"Joe Gambino", "Gambino, Joe", false},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, nameMatches(c.a, c.b), "%s vs %s", c.a, c.b)
	}
}
