package athletics

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"outreach-backend/lib/htmlutil"
	"outreach-backend/lib/textutil"
)

var staffTableKeywords = []string{"name", "title", "position", "email", "phone"}

// isStaffTable keeps tables that look like personnel listings and
// skips schedules, stats and standings tables.
func isStaffTable(table *goquery.Selection) bool {
	if strings.Contains(table.AttrOr("class", ""), "sidearm-table") {
		return true
	}

	caption := htmlutil.SelectionText(table.Find("caption"))
	if textutil.MatchName(caption, []string{"staff", "coaches"}) {
		return true
	}

	header := strings.ToLower(htmlutil.SelectionText(table.Find("tr").First()))
	hits := 0
	for _, kw := range staffTableKeywords {
		if strings.Contains(header, kw) {
			hits++
		}
	}
	return hits >= 2
}

type staffColumns struct {
	name  int
	title int
	email int
	phone int
}

func identifyColumns(table *goquery.Selection) staffColumns {
	cols := staffColumns{name: -1, title: -1, email: -1, phone: -1}

	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.ToLower(htmlutil.SelectionText(cell))
		id := strings.ToLower(cell.AttrOr("id", ""))

		switch {
		case cols.name == -1 && (strings.Contains(text, "name") || strings.Contains(id, "fullname") || strings.Contains(id, "coaches")):
			cols.name = i
		case cols.title == -1 && (strings.Contains(text, "title") || strings.Contains(text, "position") || strings.Contains(id, "title")):
			cols.title = i
		case cols.email == -1 && (strings.Contains(text, "email") || strings.Contains(id, "email")):
			cols.email = i
		case cols.phone == -1 && (strings.Contains(text, "phone") || strings.Contains(id, "phone")):
			cols.phone = i
		}
	})

	if cols.name != -1 {
		return cols
	}

	// Headerless table: infer from the shape of the first data row.
	// Email and phone cells give themselves away; the first of the
	// remaining text cells is the name, the second the title.
	row := table.Find("tr").Eq(1)
	if row.Length() == 0 {
		row = table.Find("tr").First()
	}
	textCols := []int{}
	row.Find("td, th").Each(func(i int, cell *goquery.Selection) {
		text := htmlutil.SelectionText(cell)
		switch {
		case cols.email == -1 && (cell.Find("a[href^='mailto:']").Length() > 0 || strings.Contains(text, "@")):
			cols.email = i
		case cols.phone == -1 && htmlutil.CleanPhone(text) != "":
			cols.phone = i
		default:
			textCols = append(textCols, i)
		}
	})
	if len(textCols) > 0 {
		cols.name = textCols[0]
	}
	if len(textCols) > 1 {
		cols.title = textCols[1]
	}
	return cols
}

func cellAt(cells *goquery.Selection, idx int) *goquery.Selection {
	if idx < 0 || idx >= cells.Length() {
		return nil
	}
	return cells.Eq(idx)
}

func emailFromCell(cell *goquery.Selection) string {
	if cell == nil {
		return ""
	}
	href := cell.Find("a[href^='mailto:']").AttrOr("href", "")
	if href != "" {
		email := strings.TrimPrefix(href, "mailto:")
		email = strings.SplitN(email, "?", 2)[0]
		if !htmlutil.IsPlaceholderEmail(email) {
			return strings.TrimSpace(email)
		}
		return ""
	}
	emails := htmlutil.FindEmails(htmlutil.SelectionText(cell))
	if len(emails) > 0 {
		return emails[0]
	}
	return ""
}

func staffFromTable(table *goquery.Selection, sport string) []StaffMember {
	cols := identifyColumns(table)
	if cols.name == -1 {
		return nil
	}

	var out []StaffMember
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		nameCell := cellAt(cells, cols.name)
		if nameCell == nil {
			return
		}
		name := htmlutil.SelectionText(nameCell)
		if name == "" || strings.EqualFold(name, "name") || strings.EqualFold(name, "full name") {
			return
		}

		member := StaffMember{
			Name:   name,
			Sport:  sport,
			BioURL: nameCell.Find("a").First().AttrOr("href", ""),
		}
		if cell := cellAt(cells, cols.title); cell != nil {
			member.Title = htmlutil.SelectionText(cell)
		}
		member.Email = emailFromCell(cellAt(cells, cols.email))
		if cell := cellAt(cells, cols.phone); cell != nil {
			member.Phone = htmlutil.CleanPhone(htmlutil.SelectionText(cell))
		}

		// Listings frequently put the mailto link in an unlabeled
		// trailing column.
		if member.Email == "" {
			cells.Each(func(_ int, cell *goquery.Selection) {
				if member.Email != "" {
					return
				}
				member.Email = emailFromCell(cell)
			})
		}
		if member.Phone == "" {
			cells.Each(func(_ int, cell *goquery.Selection) {
				if member.Phone != "" {
					return
				}
				member.Phone = htmlutil.FindPhone(htmlutil.SelectionText(cell))
			})
		}

		out = append(out, member)
	})
	return out
}

func extractFromTables(ctx context.Context, s *extractSession) []StaffMember {
	_ = ctx

	var out []StaffMember
	seen := map[string]bool{}
	s.doc.Find("table").Each(func(i int, table *goquery.Selection) {
		if !isStaffTable(table) {
			return
		}
		for _, member := range staffFromTable(table, s.sport) {
			key := strings.ToLower(member.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			member.BioURL = absoluteBioURL(s.staffURL, member.BioURL)
			out = append(out, member)
		}
	})
	return out
}

func absoluteBioURL(pageURL, href string) string {
	if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}
	return resolveHref(pageURL, href)
}
