// Package textproc normalizes legal text for vectorization and matching.
//
// The pipeline lowercases, folds Unicode to ASCII, expands contractions and
// legal abbreviations, strips URLs/emails/punctuation, drops numbers except
// 4-digit years, and removes English plus legal stop words. Both stored
// questions and incoming queries go through the same pipeline so their
// vectors stay comparable.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	urlRe      = regexp.MustCompile(`https?://[^\s]+`)
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	numberRe   = regexp.MustCompile(`\b\d+\b`)
	spaceRe    = regexp.MustCompile(`\s+`)
	asciiFold  = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stopWords  = buildStopWords()
	shortForms = [][2]string{
		{"won't", "will not"},
		{"can't", "cannot"},
		{"n't", " not"},
		{"'re", " are"},
		{"'ve", " have"},
		{"'ll", " will"},
		{"'d", " would"},
		{"'m", " am"},
		// Legal abbreviations.
		{"vs.", "versus"},
		{"v.", "versus"},
		{"i.e.", "that is"},
		{"e.g.", "for example"},
	}
)

// legalStopWords are filler terms common in statute text that carry no
// discriminative weight for retrieval.
var legalStopWords = []string{
	"whereas", "whereof", "wherein", "whereby", "therefore", "heretofore",
	"hereinafter", "aforementioned", "aforesaid", "pursuant", "thereof",
	"herein", "hereunder", "notwithstanding", "provided", "however",
}

// englishStopWords is a compact English stop list; question words are kept
// out of it on purpose since they signal query intent.
var englishStopWords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "of", "at",
	"by", "for", "with", "about", "against", "between", "into", "through",
	"during", "before", "after", "above", "below", "to", "from", "up", "down",
	"in", "out", "on", "off", "over", "under", "again", "further", "once",
	"here", "there", "all", "any", "both", "each", "few", "more", "most",
	"other", "some", "such", "no", "nor", "not", "only", "own", "same", "so",
	"than", "too", "very", "s", "t", "just", "don", "now", "is", "am", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "will", "would", "shall", "should", "can",
	"could", "may", "might", "must", "i", "me", "my", "we", "our", "you",
	"your", "he", "him", "his", "she", "her", "it", "its", "they", "them",
	"their", "this", "that", "these", "those", "as",
}

func buildStopWords() map[string]bool {
	words := make(map[string]bool, len(englishStopWords)+len(legalStopWords))
	for _, w := range englishStopWords {
		words[w] = true
	}
	for _, w := range legalStopWords {
		words[w] = true
	}
	return words
}

// IsStopWord reports whether the lower-cased token is filtered by Tokens.
func IsStopWord(token string) bool { return stopWords[token] }

// Normalize cleans text without tokenizing: lowercase, ASCII fold, expanded
// short forms, no URLs/emails/punctuation, numbers dropped except 4-digit
// years, collapsed whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)
	if folded, _, err := transform.String(asciiFold, text); err == nil {
		text = folded
	}
	for _, sf := range shortForms {
		text = strings.ReplaceAll(text, sf[0], sf[1])
	}
	text = urlRe.ReplaceAllString(text, " ")
	text = emailRe.ReplaceAllString(text, " ")
	text = numberRe.ReplaceAllStringFunc(text, func(n string) string {
		if len(n) == 4 { // keep years
			return n
		}
		return " "
	})
	text = stripPunct(text)
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Tokens normalizes text and returns its tokens with stop words and
// degenerate (single-rune) tokens removed. A stop-word-only input yields an
// empty slice, which the vectorizer embeds as the zero vector.
func Tokens(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func stripPunct(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
