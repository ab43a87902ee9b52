package web

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TrackingMeta lists the tracking <meta> tags present in an HTML document as
// "name=value" or "property=value" strings, sorted. It is a read-only
// inspection used for verbose logging; Scrub decides what is removed.
func TrackingMeta(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	names := setOf(trackingMetaNames)
	props := setOf(trackingMetaProperties)

	var found []string
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("name"); ok && names[strings.ToLower(v)] {
			found = append(found, "name="+strings.ToLower(v))
		}
		if v, ok := s.Attr("property"); ok && props[strings.ToLower(v)] {
			found = append(found, "property="+strings.ToLower(v))
		}
	})
	sort.Strings(found)
	return found
}

func setOf(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
