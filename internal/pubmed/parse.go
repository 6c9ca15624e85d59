// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"regexp"
	"strings"
)

// The abstract document is scanned with string boundaries and small
// regexes rather than a general XML parser: the engine returns one fixed,
// well-formed shape (repeated article blocks, one id tag each, zero or
// more abstract fragments), and this scanner is constrained to exactly
// that shape. It is not suitable for arbitrary markup.
const articleBoundary = "<PubmedArticle>"

var (
	pmidPattern     = regexp.MustCompile(`<PMID[^>]*>(\d+)</PMID>`)
	abstractPattern = regexp.MustCompile(`(?s)<AbstractText[^>]*>(.*?)</AbstractText>`)
	innerTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// parseAbstracts extracts per-record abstract text from a bulk fetch
// document. Each record's fragments are stripped of inner markup and
// joined with a blank line. Records without fragments are simply absent
// from the returned map.
func parseAbstracts(doc string) map[string]string {
	abstracts := make(map[string]string)

	blocks := strings.Split(doc, articleBoundary)
	for _, block := range blocks[1:] {
		m := pmidPattern.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		pmid := m[1]

		var fragments []string
		for _, fm := range abstractPattern.FindAllStringSubmatch(block, -1) {
			text := strings.TrimSpace(innerTagPattern.ReplaceAllString(fm[1], ""))
			if text != "" {
				fragments = append(fragments, text)
			}
		}
		if len(fragments) == 0 {
			continue
		}
		abstracts[pmid] = strings.Join(fragments, "\n\n")
	}
	return abstracts
}
