package contacts

import (
	"fmt"
	"regexp"
	"strings"

	"outreach-backend/lib/htmlutil"
	"outreach-backend/lib/scrapers/athletics"
	"outreach-backend/lib/textutil"
)

type Severity string

const (
	SeverityFail Severity = "fail"
	SeverityWarn Severity = "warn"
)

type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Detail   string   `json:"detail"`
}

// Schools whose email domain can't be derived from their name.
var domainExceptions = map[string]string{
	"merrimack":                 "merrimack.edu",
	"wpi":                       "wpi.edu",
	"rpi":                       "rpi.edu",
	"snhu":                      "snhu.edu",
	"une":                       "une.edu",
	"usm":                       "maine.edu",
	"southern maine":            "maine.edu",
	"southern new hampshire":    "snhu.edu",
	"worcester polytechnic":     "wpi.edu",
	"rensselaer":                "rpi.edu",
	"rensselaer polytechnic":    "rpi.edu",
	"connecticut college":       "conncoll.edu",
	"saint anselm":              "anselm.edu",
	"saint anselm college":      "anselm.edu",
	"st anselm":                 "anselm.edu",
	"st. anselm":                "anselm.edu",
	"university of new england": "une.edu",
}

var nonAlphaRegex = regexp.MustCompile(`[^a-z ]`)

// GuessDomain derives the probable .edu domain from a school name.
// "University of Maine" -> maine.edu, "Bowdoin College" ->
// bowdoin.edu, otherwise the first word. A guess, used only for
// warnings, never to reject a contact outright.
func GuessDomain(school string) string {
	name := textutil.NormalizeSchool(school)
	if domain, ok := domainExceptions[name]; ok {
		return domain
	}
	name = nonAlphaRegex.ReplaceAllString(name, "")

	if rest, ok := strings.CutPrefix(name, "university of "); ok {
		fields := strings.Fields(rest)
		if len(fields) > 0 {
			return fields[0] + ".edu"
		}
	}
	for _, suffix := range []string{" college", " university", " institute"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			if domain, ok := domainExceptions[base]; ok {
				return domain
			}
			return strings.ReplaceAll(base, " ", "") + ".edu"
		}
	}

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0] + ".edu"
}

var phoneDigitsRegex = regexp.MustCompile(`\D`)

// ValidateContact checks one selected contact before it goes in a
// report. Fails mean the contact is unusable; warns mean a human
// should eyeball it.
func ValidateContact(school string, member athletics.StaffMember) []Issue {
	var issues []Issue

	if member.Email == "" {
		issues = append(issues, Issue{
			Severity: SeverityFail,
			Code:     "missing_email",
			Detail:   fmt.Sprintf("%s has no email address", member.Name),
		})
	} else {
		domain := htmlutil.EmailDomain(member.Email)
		switch {
		case domain == "":
			issues = append(issues, Issue{
				Severity: SeverityFail,
				Code:     "malformed_email",
				Detail:   fmt.Sprintf("%q is not an email address", member.Email),
			})
		case htmlutil.IsPlaceholderEmail(member.Email):
			issues = append(issues, Issue{
				Severity: SeverityFail,
				Code:     "placeholder_email",
				Detail:   fmt.Sprintf("%q is a platform placeholder", member.Email),
			})
		default:
			expected := GuessDomain(school)
			if expected != "" && !strings.HasSuffix(domain, expected) {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     "domain_mismatch",
					Detail:   fmt.Sprintf("email domain %s does not look like %s", domain, expected),
				})
			}
		}
	}

	if member.Name == "" {
		issues = append(issues, Issue{
			Severity: SeverityFail,
			Code:     "missing_name",
			Detail:   "contact has no name",
		})
	}
	if member.Title == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     "missing_title",
			Detail:   fmt.Sprintf("%s has no title", member.Name),
		})
	}

	if member.Phone == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     "missing_phone",
			Detail:   fmt.Sprintf("%s has no phone number", member.Name),
		})
	} else if len(phoneDigitsRegex.ReplaceAllString(member.Phone, "")) != 10 {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     "bad_phone",
			Detail:   fmt.Sprintf("%q is not a 10 digit phone number", member.Phone),
		})
	}

	return issues
}

// HasFailure reports whether any issue is fatal.
func HasFailure(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityFail {
			return true
		}
	}
	return false
}
