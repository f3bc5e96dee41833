package athletics

import (
	"context"
	"strings"

	"github.com/antzucaro/matchr"

	"outreach-backend/lib/htmlutil"
)

const nameMatchThreshold = 0.88

func normalizePersonName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}

// nameMatches pairs a listing name with a link label. Exact match and
// containment cover the common cases ("John Smith" against "John
// Smith - Head Coach"); last-name plus first-initial and Jaro-Winkler
// pick up middle initials and nicknames.
func nameMatches(a, b string) bool {
	a = normalizePersonName(a)
	b = normalizePersonName(b)
	if a == "" || b == "" {
		return false
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	aParts := strings.Fields(a)
	bParts := strings.Fields(b)
	if len(aParts) >= 2 && len(bParts) >= 2 {
		sameLast := aParts[len(aParts)-1] == bParts[len(bParts)-1]
		sameInitial := aParts[0][0] == bParts[0][0]
		if sameLast && sameInitial {
			return true
		}
	}

	return matchr.JaroWinkler(a, b, false) >= nameMatchThreshold
}

func bioLinkFor(ctx context.Context, s *extractSession, member StaffMember) string {
	if member.BioURL != "" {
		return member.BioURL
	}
	for _, anchor := range htmlutil.GetAnchors(ctx, s.doc.Find("a")) {
		if !strings.Contains(anchor.Href, "/coaches/") && !strings.Contains(anchor.Href, "/staff/") &&
			!strings.Contains(anchor.Href, "/coach/") {
			continue
		}
		if nameMatches(member.Name, anchor.Name) {
			return resolveHref(s.staffURL, anchor.Href)
		}
	}
	return ""
}

// contactFromBioPage pulls an email and phone off a person's bio
// page. Bio pages bury contacts in script blobs and sidebars, so this
// works over raw markup rather than a structured region.
func contactFromBioPage(ctx context.Context, s *extractSession, bioURL string) (email, phone string) {
	doc, err := s.fetcher.Get(ctx, bioURL)
	if err != nil {
		return "", ""
	}
	raw, err := doc.Html()
	if err != nil {
		return "", ""
	}

	email = htmlutil.BestEmail(htmlutil.FindEmails(raw), s.domain)
	phone = htmlutil.FindPhone(htmlutil.SelectionText(doc.Selection))
	return email, phone
}

// enrichFromBios visits each emailless member's bio page to recover
// an address the listing withheld.
func enrichFromBios(ctx context.Context, s *extractSession) []StaffMember {
	out := make([]StaffMember, len(s.staff))
	copy(out, s.staff)

	for i, member := range out {
		if member.HasEmail() {
			continue
		}
		bioURL := bioLinkFor(ctx, s, member)
		if bioURL == "" {
			continue
		}
		email, phone := contactFromBioPage(ctx, s, bioURL)
		if email != "" {
			out[i].Email = email
		}
		if out[i].Phone == "" && phone != "" {
			out[i].Phone = phone
		}
	}
	return out
}

// enrichFromStaffDirectory checks the site-wide staff directory for
// the names the team listing surfaced without addresses.
func enrichFromStaffDirectory(ctx context.Context, s *extractSession) []StaffMember {
	root := rootURL(s.staffURL)
	if root == "" {
		return s.staff
	}

	var directory []StaffMember
	for _, path := range []string{"/staff-directory", "/staff.aspx", "/information/directory"} {
		doc, err := s.fetcher.Get(ctx, root+path)
		if err != nil {
			continue
		}
		dirSession := &extractSession{
			fetcher:  s.fetcher,
			staffURL: root + path,
			sport:    s.sport,
			domain:   s.domain,
			doc:      doc,
		}
		directory = extractFromTables(ctx, dirSession)
		if len(directory) > 0 {
			break
		}
	}
	if len(directory) == 0 {
		return s.staff
	}

	out := make([]StaffMember, len(s.staff))
	copy(out, s.staff)
	for i, member := range out {
		if member.HasEmail() {
			continue
		}
		for _, entry := range directory {
			if !nameMatches(member.Name, entry.Name) {
				continue
			}
			if entry.Email != "" {
				out[i].Email = entry.Email
			}
			if out[i].Phone == "" && entry.Phone != "" {
				out[i].Phone = entry.Phone
			}
			break
		}
	}
	return out
}

func rootURL(pageURL string) string {
	idx := strings.Index(pageURL, "://")
	if idx == -1 {
		return ""
	}
	rest := pageURL[idx+3:]
	slash := strings.Index(rest, "/")
	if slash == -1 {
		return pageURL
	}
	return pageURL[:idx+3+slash]
}
