package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table><tbody><tr><td><a href="/coaches/joe">Joe   Gambino</a> <span>Head Coach</span></td></tr></tbody></table>`,
	))
	require.NoError(t, err)
	require.Equal(t, "Joe Gambino Head Coach", SelectionText(doc.Find("td")))
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<ul>
		<li><a href="/coaches/joe-gambino">Joe Gambino</a></li>
		<li><a href="mailto:x@school.edu">Email</a></li>
	</ul>`))
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	require.Equal(t, []Anchor{
		{Name: "Joe Gambino", Href: "/coaches/joe-gambino"},
		{Name: "Email", Href: "mailto:x@school.edu"},
	}, anchors)
}
