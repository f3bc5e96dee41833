package contacts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"outreach-backend/lib/scrapers/athletics"
)

func TestGuessDomain(t *testing.T) {
	testCases := []struct {
		school   string
		expected string
	}{
		{"Bowdoin College", "bowdoin.edu"},
		{"University of Maine", "maine.edu"},
		{"Tufts University", "tufts.edu"},
		{"Merrimack", "merrimack.edu"},
		{"Saint Anselm", "anselm.edu"},
		{"WPI", "wpi.edu"},
		{"Worcester Polytechnic Institute", "wpi.edu"},
		{"Rensselaer Polytechnic Institute", "rpi.edu"},
		{"Springfield", "springfield.edu"},
		{"", ""},
	}

	for _, test := range testCases {
		t.Run(test.school, func(t *testing.T) {
			require.Equal(t, test.expected, GuessDomain(test.school))
		})
	}
}

func codes(issues []Issue) []string {
	var out []string
	for _, issue := range issues {
		out = append(out, issue.Code)
	}
	return out
}

func TestValidateContact(t *testing.T) {
	t.Run("clean contact", func(t *testing.T) {
		issues := ValidateContact("Merrimack", athletics.StaffMember{
			Name:  "Joe Gambino",
			Title: "Head Coach",
			Email: "gambinoj@merrimack.edu",
			Phone: "978-837-5000",
		})
		require.Empty(t, issues)
		require.False(t, HasFailure(issues))
	})

	t.Run("missing email fails", func(t *testing.T) {
		issues := ValidateContact("Merrimack", athletics.StaffMember{
			Name:  "Joe Gambino",
			Title: "Head Coach",
			Phone: "978-837-5000",
		})
		require.Contains(t, codes(issues), "missing_email")
		require.True(t, HasFailure(issues))
	})

	t.Run("placeholder email fails", func(t *testing.T) {
		issues := ValidateContact("Merrimack", athletics.StaffMember{
			Name:  "Joe Gambino",
			Title: "Head Coach",
			Email: "support@sidearmstats.com",
			Phone: "978-837-5000",
		})
		require.Contains(t, codes(issues), "placeholder_email")
		require.True(t, HasFailure(issues))
	})

	t.Run("foreign domain warns", func(t *testing.T) {
		issues := ValidateContact("Merrimack", athletics.StaffMember{
			Name:  "Joe Gambino",
			Title: "Head Coach",
			Email: "jgambino@gmail.com",
			Phone: "978-837-5000",
		})
		require.Contains(t, codes(issues), "domain_mismatch")
		require.False(t, HasFailure(issues))
	})

	t.Run("missing phone and title warn", func(t *testing.T) {
		issues := ValidateContact("Merrimack", athletics.StaffMember{
			Name:  "Joe Gambino",
			Email: "gambinoj@merrimack.edu",
		})
		require.ElementsMatch(t, []string{"missing_title", "missing_phone"}, codes(issues))
		require.False(t, HasFailure(issues))
	})

	t.Run("short phone warns", func(t *testing.T) {
		issues := ValidateContact("Merrimack", athletics.StaffMember{
			Name:  "Joe Gambino",
			Title: "Head Coach",
			Email: "gambinoj@merrimack.edu",
			Phone: "837-5000",
		})
		require.Contains(t, codes(issues), "bad_phone")
	})
}
