// Package extract finds URL-shaped and path-shaped substrings in arbitrary
// text. Both scanners are best-effort lexical matchers tuned for low false
// negatives; they are pure functions and safe for concurrent use.
package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// URL matches begin at an http:// or https:// scheme prefix and extend
// until one of these terminator bytes, or the start of the next scheme
// occurrence. The scheme lookahead splits concatenated URLs instead of
// merging them into one match.
const urlTerminators = " \t\r\n\f\v\"'`,|()[]{}<>"

var schemeRE = regexp.MustCompile(`https?://`)

// Quoted path literals: content starts with "/" plus one allowed first
// character, then a run of allowed path characters, non-greedy up to a
// closing quote of the same kind as the opening one. Matching never crosses
// a literal boundary, which keeps arbitrary slashes in prose from matching.
var quotedPathRE = regexp.MustCompile(`"(/[A-Za-z0-9_.][A-Za-z0-9?&=#.!:_\-/]*?)"|'(/[A-Za-z0-9_.][A-Za-z0-9?&=#.!:_\-/]*?)'`)

// URLs scans text left to right and returns every parseable absolute URL it
// contains. Raw matches that url.Parse rejects are dropped silently; a
// malformed candidate is a filter outcome, not an error. Matches never
// overlap.
func URLs(text string) []*url.URL {
	locs := schemeRE.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var out []*url.URL
	for i, loc := range locs {
		start := loc[0]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if cut := strings.IndexAny(text[start:end], urlTerminators); cut != -1 {
			end = start + cut
		}
		raw := text[start:end]
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			continue
		}
		out = append(out, parsed)
	}
	return out
}

// Paths returns every quoted absolute-path literal found in text, in
// document order. The quote opening a literal must also close it; "/a/b'
// yields nothing.
func Paths(text string) []string {
	var out []string
	for _, m := range quotedPathRE.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			out = append(out, m[1])
		} else if m[2] != "" {
			out = append(out, m[2])
		}
	}
	return out
}
