package spotify

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// Token extraction is heuristic: the host bundles its session credential into
// inline script text or a serialized state blob, and either may change shape
// at any time. Callers must treat a miss as normal.

var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`accessToken"?\s*:\s*"([A-Za-z0-9\-_.]{20,})"`),
	regexp.MustCompile(`"token"\s*:\s*"([A-Za-z0-9\-_.]{20,})"`),
}

// TokenFromPage scans page HTML for an embedded bearer credential. Two
// independent attempts: inline script text against known key-literal
// patterns, then JSON state blobs. First match wins.
func TokenFromPage(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			scripts = append(scripts, text)
		}
	})

	for _, text := range scripts {
		for _, pattern := range tokenPatterns {
			if m := pattern.FindStringSubmatch(text); m != nil {
				return m[1], true
			}
		}
	}

	// Second attempt: state blobs serialized as JSON.
	for _, text := range scripts {
		if !gjson.Valid(text) {
			continue
		}
		if tok := gjson.Get(text, "accessToken"); tok.Exists() && len(tok.String()) >= 20 {
			return tok.String(), true
		}
		if tok := gjson.Get(text, "session.accessToken"); tok.Exists() && len(tok.String()) >= 20 {
			return tok.String(), true
		}
	}

	return "", false
}
