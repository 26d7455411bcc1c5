package intent

import (
	"regexp"
	"strings"
)

// Direct detection for the two site-information intents. These short-circuit
// the model call and tolerate small typos in English and Arabic.

var aboutWebsiteRe = regexp.MustCompile(`(?i)(about(\s*(us|website))?|web\s*site|website|site|who\s+(are|r)\s+(you|u)|what\s+is\s+(this|your)\s+(app|site|website)|info about|about\s+the\s+(app|site)|company\s+info|معلومات|نبذة|موقع|عن\s+الموقع|شو\s+هو\s+الموقع|ايش\s+الموقع|عن\s+التطبيق|مين\s+انتو|مين\s+الشركة|شو\s+يعني\s+(كويكو|الموقع))`)

var websiteNameRe = regexp.MustCompile(`(?i)(what('?| i)?s\s+(the\s+)?(app|site|website)\s+name|name\s+of\s+(the\s+)?(app|site|website)|site\s+name|website\s+name|اسم\s+الموقع|شو\s+اسم\s+الموقع|ايش\s+اسم\s+الموقع|اسم\s+التطبيق|اسم\s+الويب\s*سايت)`)

var (
	arabicDiacriticsRe = regexp.MustCompile(`[\x{064B}-\x{065F}]`)
	punctuationRe      = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRe       = regexp.MustCompile(`\s+`)
)

func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = arabicDiacriticsRe.ReplaceAllString(s, "")
	s = punctuationRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// levenshtein computes the edit distance between two normalized strings.
func levenshtein(a, b string) int {
	ar := []rune(normalizeText(a))
	br := []rune(normalizeText(b))
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := 0; j <= len(br); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

var aboutAnchors = []string{
	"about",
	"website",
	"web site",
	"site",
	"about website",
	"عن الموقع",
	"الموقع",
	"نبذة",
	"عن التطبيق",
	"عن الشركة",
}

func looksLikeAbout(text string) bool {
	t := normalizeText(text)
	if aboutWebsiteRe.MatchString(t) {
		return true
	}
	for _, w := range aboutAnchors {
		if levenshtein(t, w) <= 2 || strings.Contains(t, w) {
			return true
		}
	}
	return false
}

var websiteNameAnchors = []string{
	"website name",
	"site name",
	"name of website",
	"اسم الموقع",
	"اسم الويب سايت",
	"شو اسم الموقع",
	"ايش اسم الموقع",
}

func looksLikeWebsiteName(text string) bool {
	t := normalizeText(text)
	if websiteNameRe.MatchString(t) {
		return true
	}
	for _, w := range websiteNameAnchors {
		if strings.Contains(t, w) || levenshtein(t, w) <= 2 {
			return true
		}
	}
	return false
}
