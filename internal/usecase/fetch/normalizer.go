// Package fetch turns the raw RSS feed into normalized news records.
// The Service is the boundary between the network and the rest of the
// application: it never returns an error, a failed fetch yields no records.
package fetch

import (
	"regexp"
	"strings"

	"crypto-news-feed/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// RawItem is a feed entry as delivered by the feed parser.
// Missing fields are empty strings.
type RawItem struct {
	Title       string
	Description string
	PubDate     string
}

// tagPattern matches any markup tag, non-greedy so adjacent tags are removed one by one.
var tagPattern = regexp.MustCompile(`<.*?>`)

const anchorClose = "</a>"

// Normalize converts a raw feed entry into a NewsRecord.
// It is pure: the same input always produces the same record.
//
// Title and PublishedDate are copied verbatim. Summary is the description with
// every tag stripped and whitespace collapsed. Link is the href of the first
// anchor in the description. Source is the cleaned text following the last
// closing anchor tag, which is where aggregated feeds put the outlet name.
func Normalize(item RawItem) entity.NewsRecord {
	return entity.NewsRecord{
		Title:         item.Title,
		Link:          firstLink(item.Description),
		PublishedDate: item.PubDate,
		Summary:       CleanHTML(item.Description),
		Source:        sourceFromDescription(item.Description),
	}
}

// NormalizeAll normalizes items preserving feed order.
func NormalizeAll(items []RawItem) []entity.NewsRecord {
	records := make([]entity.NewsRecord, 0, len(items))
	for _, item := range items {
		records = append(records, Normalize(item))
	}
	return records
}

// CleanHTML removes all tags from s, collapses runs of whitespace into a
// single space and trims the result.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(text), " ")
}

// firstLink returns the href attribute of the first <a> element, or "".
func firstLink(description string) string {
	if description == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return ""
	}
	href, _ := doc.Find("a").First().Attr("href")
	return href
}

// sourceFromDescription returns the cleaned text after the last </a>.
// Descriptions without an anchor have no source.
func sourceFromDescription(description string) string {
	idx := strings.LastIndex(description, anchorClose)
	if idx < 0 {
		return ""
	}
	return CleanHTML(description[idx+len(anchorClose):])
}
