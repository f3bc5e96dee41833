package athletics

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"outreach-backend/lib/htmlutil"
	"outreach-backend/lib/textutil"
)

func (s *extractSession) roster(ctx context.Context) *goquery.Document {
	if s.rosterDoc != nil {
		return s.rosterDoc
	}
	if s.rosterURL == "" {
		s.rosterURL = TeamURL(s.staffURL) + "/roster"
	}
	doc, err := s.fetcher.Get(ctx, s.rosterURL)
	if err != nil {
		return nil
	}
	s.rosterDoc = doc
	return doc
}

// extractFromRoster falls back to the team roster page, which on many
// sites carries a "Coaching Staff" section after the player list. The
// walk stops before any "Support Staff" section so trainers and ops
// interns don't masquerade as coaches.
func extractFromRoster(ctx context.Context, s *extractSession) []StaffMember {
	doc := s.roster(ctx)
	if doc == nil {
		return nil
	}

	var heading *goquery.Selection
	doc.Find("h2, h3, h4, div.roster-section-title, caption").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if textutil.MatchName(htmlutil.SelectionText(sel), []string{"coaching staff", "coaches"}) {
			heading = sel
			return false
		}
		return true
	})
	if heading == nil {
		return nil
	}

	if heading.Is("caption") {
		table := heading.Closest("table")
		return staffFromTable(table, s.sport)
	}

	var out []StaffMember
	heading.NextAll().EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.ToLower(htmlutil.SelectionText(sel))

		table := sel
		if !sel.Is("table") {
			table = sel.Find("table").First()
		}
		if table.Length() > 0 {
			if strings.Contains(text, "support staff") && !strings.Contains(text, "coach") {
				return false
			}
			out = staffFromTable(table, s.sport)
			return false
		}

		return !strings.Contains(text, "support staff")
	})
	for i := range out {
		out[i].BioURL = absoluteBioURL(s.rosterURL, out[i].BioURL)
	}
	return out
}

// extractFromRosterBios is the last resort: follow every coach/staff
// bio link off the roster page and rebuild the staff list from the
// bio pages themselves.
func extractFromRosterBios(ctx context.Context, s *extractSession) []StaffMember {
	doc := s.roster(ctx)
	if doc == nil {
		return nil
	}

	seen := map[string]bool{}
	var links []string
	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a")) {
		if !strings.Contains(anchor.Href, "/coach") && !strings.Contains(anchor.Href, "/staff/") {
			continue
		}
		abs := resolveHref(s.rosterURL, anchor.Href)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		links = append(links, abs)
	}

	var out []StaffMember
	names := map[string]bool{}
	for _, link := range links {
		member, ok := staffFromBioPage(ctx, s, link)
		if !ok {
			continue
		}
		key := strings.ToLower(member.Name)
		if names[key] {
			continue
		}
		names[key] = true
		out = append(out, member)
	}
	return out
}

var bioTitleKeywords = []string{
	"director of operations",
	"associate head coach",
	"first assistant coach",
	"assistant coach",
	"pitching coach",
	"hitting coach",
	"head coach",
}

func staffFromBioPage(ctx context.Context, s *extractSession, bioURL string) (StaffMember, bool) {
	doc, err := s.fetcher.Get(ctx, bioURL)
	if err != nil {
		return StaffMember{}, false
	}

	name := htmlutil.SelectionText(doc.Find("h1").First())
	if name == "" {
		title := htmlutil.SelectionText(doc.Find("title").First())
		name = strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
	}
	if name == "" {
		return StaffMember{}, false
	}

	raw, err := doc.Html()
	if err != nil {
		return StaffMember{}, false
	}
	email := htmlutil.BestEmail(htmlutil.FindEmails(raw), s.domain)
	if email == "" {
		return StaffMember{}, false
	}

	pageText := strings.ToLower(htmlutil.SelectionText(doc.Selection))
	title := ""
	for _, kw := range bioTitleKeywords {
		if strings.Contains(pageText, kw) {
			title = titleCase(kw)
			break
		}
	}

	return StaffMember{
		Name:   name,
		Title:  title,
		Email:  email,
		Phone:  htmlutil.FindPhone(htmlutil.SelectionText(doc.Selection)),
		Sport:  s.sport,
		BioURL: bioURL,
	}, true
}

func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		if p == "of" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
