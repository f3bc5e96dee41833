package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindEmails(t *testing.T) {
	text := `Contact john.smith@merrimack.edu or report errors to
	crash@sentry.wmt.dev; marketing: info@sidearmstats.com, alt: jsmith@gmail.com`

	emails := FindEmails(text)
	require.Equal(t, []string{"john.smith@merrimack.edu", "jsmith@gmail.com"}, emails)
}

func TestBestEmail(t *testing.T) {
	candidates := []string{"coach@gmail.com", "jane@athletics.bowdoin.edu", "jane@bowdoin.edu"}

	require.Equal(t, "jane@bowdoin.edu", BestEmail(candidates, "bowdoin.edu"))
	require.Equal(t, "jane@athletics.bowdoin.edu",
		BestEmail([]string{"coach@gmail.com", "jane@athletics.bowdoin.edu"}, "bowdoin.edu"))
	require.Equal(t, "jane@athletics.bowdoin.edu", BestEmail(candidates, ""))
	require.Equal(t, "", BestEmail(nil, "bowdoin.edu"))
	require.Equal(t, "coach@gmail.com", BestEmail([]string{"coach@gmail.com"}, "bowdoin.edu"))
}

func TestCleanPhone(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"(617) 555-0134", "(617) 555-0134"},
		{"617-555-0134", "617-555-0134"},
		{"207-786-6362207-786-6362", "207-786-6362"},
		{"555-0134", ""},
		{"", ""},
		{"no phone here", ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, CleanPhone(test.in))
	}
}

func TestEmailDomain(t *testing.T) {
	require.Equal(t, "merrimack.edu", EmailDomain("Coach@Merrimack.edu"))
	require.Equal(t, "", EmailDomain("not an email"))
}
