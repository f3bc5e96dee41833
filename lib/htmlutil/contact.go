package htmlutil

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
var phoneRegex = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
var nonDigitRegex = regexp.MustCompile(`\D`)

// addresses that show up inside page source but never belong to a person:
// error-reporting sinks, documentation placeholders and platform vendors
var placeholderDomains = []string{
	"sentry.wmt.dev",
	"example.com",
	"domain.com",
	"email.com",
	"sidearmstats.com",
	"sidearmtech.com",
}

func IsPlaceholderEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, domain := range placeholderDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// FindEmails returns every email-shaped token in text with placeholder
// domains filtered out, in document order.
func FindEmails(text string) []string {
	var out []string
	for _, m := range emailRegex.FindAllString(text, -1) {
		if IsPlaceholderEmail(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// BestEmail picks one address out of candidates: an address exactly on
// preferredDomain, then one on a subdomain of it, then any .edu address,
// then the first candidate. Returns "" when candidates is empty.
func BestEmail(candidates []string, preferredDomain string) string {
	if len(candidates) == 0 {
		return ""
	}
	if preferredDomain != "" {
		preferred := strings.ToLower(preferredDomain)
		for _, c := range candidates {
			if EmailDomain(c) == preferred {
				return c
			}
		}
		for _, c := range candidates {
			if strings.HasSuffix(EmailDomain(c), "."+preferred) {
				return c
			}
		}
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), ".edu") {
			return c
		}
	}
	return candidates[0]
}

// CleanPhone extracts a strict 10-digit phone number from text. Sites
// sometimes render the number twice back-to-back ("207-786-6362207-786-6362")
// so a doubled string is halved first.
func CleanPhone(text string) string {
	text = strings.Trim(text, " \t\n")
	if text == "" {
		return ""
	}
	if len(text) >= 14 && len(text)%2 == 0 {
		half := len(text) / 2
		if text[:half] == text[half:] {
			text = text[:half]
		}
	}
	m := phoneRegex.FindString(text)
	if m == "" {
		return ""
	}
	digits := nonDigitRegex.ReplaceAllString(m, "")
	if len(digits) != 10 {
		return ""
	}
	return m
}

// FindPhone scans free text for the first 10-digit phone number.
func FindPhone(text string) string {
	for _, m := range phoneRegex.FindAllString(text, -1) {
		digits := nonDigitRegex.ReplaceAllString(m, "")
		if len(digits) == 10 {
			return m
		}
	}
	return ""
}

// EmailDomain returns the lowercased domain of an email address, or ""
// when the input is not email shaped.
func EmailDomain(email string) string {
	idx := strings.LastIndex(email, "@")
	if idx < 0 || idx == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[idx+1:])
}
