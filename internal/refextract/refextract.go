// Package refextract pulls statute references out of free text.
//
// Pattern contract: a section reference is digits (with an optional letter
// suffix) following the literal token "Section", "Sec." or "Article", or
// preceding "IPC"/"CrPC"; an act reference is a capitalized phrase ending in
// "Act" or one of the known code abbreviations. Matching is case-insensitive
// and purely lexical.
package refextract

import (
	"regexp"
	"strings"
)

var (
	sectionRe  = regexp.MustCompile(`(?i)\b(?:section|sec\.?|article)\s+(\d+[a-z]?)`)
	codeRefRe  = regexp.MustCompile(`(?i)\b(\d+[a-z]?)\s+(?:ipc|crpc)\b`)
	actNameRe  = regexp.MustCompile(`\b((?:[A-Z][a-z]+\s+)+Act)\b`)
	codeNameRe = regexp.MustCompile(`(?i)\b(ipc|crpc)\b`)
)

var codeNames = map[string]string{
	"ipc":  "Indian Penal Code",
	"crpc": "Code of Criminal Procedure",
}

// Sections returns section numbers referenced in text, deduplicated in first
// occurrence order.
func Sections(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range sectionRe.FindAllStringSubmatch(text, -1) {
		add(&out, seen, strings.ToUpper(m[1]))
	}
	for _, m := range codeRefRe.FindAllStringSubmatch(text, -1) {
		add(&out, seen, strings.ToUpper(m[1]))
	}
	return out
}

// Acts returns act names referenced in text, deduplicated in first occurrence
// order. The IPC/CrPC abbreviations expand to their full names.
func Acts(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range actNameRe.FindAllStringSubmatch(text, -1) {
		add(&out, seen, m[1])
	}
	for _, m := range codeNameRe.FindAllStringSubmatch(text, -1) {
		add(&out, seen, codeNames[strings.ToLower(m[1])])
	}
	return out
}

func add(out *[]string, seen map[string]bool, v string) {
	if v == "" || seen[v] {
		return
	}
	seen[v] = true
	*out = append(*out, v)
}
