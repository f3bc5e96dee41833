package contacts

import (
	"strings"

	"outreach-backend/lib/scrapers/athletics"
)

// Quality grades how good a selected contact is for outreach
// purposes. Operations directors handle scheduling, so they outrank
// every coach; head coaches answer but rarely handle logistics.
type Quality string

const (
	QualityExcellent  Quality = "excellent"
	QualityVeryGood   Quality = "very_good"
	QualityGood       Quality = "good"
	QualityAcceptable Quality = "acceptable"
	QualityFallback   Quality = "fallback"
	QualityPoor       Quality = "poor"
	QualityNone       Quality = "none"
)

type titleRule struct {
	rank    int
	quality Quality
	// a title matches when any group has all of its substrings
	groups [][]string
}

// Checked in order, first match wins. "associate head" must precede
// "head coach" or associate heads would rank as heads.
var titleRules = []titleRule{
	{
		rank:    1,
		quality: QualityExcellent,
		groups:  [][]string{{"director of operations"}, {"dir", "operations"}},
	},
	{
		rank:    2,
		quality: QualityVeryGood,
		groups:  [][]string{{"first assistant"}, {"1st assistant"}},
	},
	{
		rank:    3,
		quality: QualityGood,
		groups:  [][]string{{"assistant"}, {"asst. coach"}, {"asst coach"}},
	},
	{
		rank:    4,
		quality: QualityAcceptable,
		groups:  [][]string{{"associate head"}},
	},
	{
		rank:    5,
		quality: QualityFallback,
		groups:  [][]string{{"head coach"}},
	},
}

var unrankedTitleRank = len(titleRules) + 1

func rankTitle(title string) (int, Quality) {
	title = strings.ToLower(title)
	for _, rule := range titleRules {
		for _, group := range rule.groups {
			matched := true
			for _, substr := range group {
				if !strings.Contains(title, substr) {
					matched = false
					break
				}
			}
			if matched {
				return rule.rank, rule.quality
			}
		}
	}
	return unrankedTitleRank, QualityPoor
}

// Selection is the one staff member chosen for outreach.
type Selection struct {
	Member  athletics.StaffMember `json:"member"`
	Quality Quality               `json:"quality"`
}

// SelectContact picks the best reachable staff member: lowest title
// rank among members that have an email, listing order breaking
// ties. Members without an email never win regardless of title.
func SelectContact(staff []athletics.StaffMember) (Selection, bool) {
	best := Selection{Quality: QualityNone}
	bestRank := unrankedTitleRank + 1

	for _, member := range staff {
		if !member.HasEmail() {
			continue
		}
		rank, quality := rankTitle(member.Title)
		if rank < bestRank {
			bestRank = rank
			best = Selection{Member: member, Quality: quality}
		}
	}

	return best, best.Quality != QualityNone
}
