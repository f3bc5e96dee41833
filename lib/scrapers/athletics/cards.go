package athletics

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"outreach-backend/lib/htmlutil"
)

// Most to least specific; the bare .card selector is filtered down to
// cards that actually carry a person link.
var cardSelectors = []string{
	"div.card.flex-fill",
	".coaches-content .card",
	".staff-content .card",
	".card",
}

func staffFromCard(card *goquery.Selection, pageURL, sport string) (StaffMember, bool) {
	nameLink := card.Find(".card-title a").First()
	if nameLink.Length() == 0 {
		nameLink = card.Find("h5 a, h4 a").First()
	}
	name := htmlutil.SelectionText(nameLink)
	if name == "" {
		return StaffMember{}, false
	}

	member := StaffMember{
		Name:   name,
		Sport:  sport,
		BioURL: absoluteBioURL(pageURL, nameLink.AttrOr("href", "")),
	}

	member.Title = htmlutil.SelectionText(card.Find("p.card-text").Not(".text-muted").First())

	href := card.Find("a[href^='mailto:']").AttrOr("href", "")
	if href != "" {
		email := strings.SplitN(strings.TrimPrefix(href, "mailto:"), "?", 2)[0]
		if !htmlutil.IsPlaceholderEmail(email) {
			member.Email = strings.TrimSpace(email)
		}
	}
	if member.Email == "" {
		emails := htmlutil.FindEmails(htmlutil.SelectionText(card))
		if len(emails) > 0 {
			member.Email = emails[0]
		}
	}

	phoneIcon := card.Find(".fa-phone").First()
	if phoneIcon.Length() > 0 {
		member.Phone = htmlutil.CleanPhone(htmlutil.SelectionText(phoneIcon.Parent()))
	}
	if member.Phone == "" {
		member.Phone = htmlutil.FindPhone(htmlutil.SelectionText(card))
	}

	return member, true
}

func extractFromCards(ctx context.Context, s *extractSession) []StaffMember {
	_ = ctx

	for _, selector := range cardSelectors {
		var out []StaffMember
		seen := map[string]bool{}

		s.doc.Find(selector).Each(func(i int, card *goquery.Selection) {
			member, ok := staffFromCard(card, s.staffURL, s.sport)
			if !ok {
				return
			}
			key := strings.ToLower(member.Name)
			if seen[key] {
				return
			}
			seen[key] = true
			out = append(out, member)
		})

		if len(out) > 0 {
			return out
		}
	}
	return nil
}
