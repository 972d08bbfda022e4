package textproc

import (
	"regexp"
	"strings"
)

// legalKeywords are the terms weighted heavily when boosting retrieval by
// keyword overlap. Question words are kept since they carry intent.
var legalKeywords = []string{
	// Crime types.
	"theft", "robbery", "dacoity", "murder", "assault", "rape", "kidnapping",
	"extortion", "forgery", "cheating", "fraud", "bribery", "corruption",
	"defamation", "trespass", "mischief", "arson", "riot",
	// Legal concepts.
	"bail", "arrest", "fir", "warrant", "trial", "appeal", "petition",
	"complaint", "cognizable", "bailable", "summons", "investigation",
	"chargesheet", "custody", "remand", "conviction", "acquittal",
	// Laws and sections.
	"ipc", "crpc", "section", "act", "code", "article", "clause",
	// Family law.
	"divorce", "marriage", "maintenance", "alimony", "adoption",
	"matrimonial", "spouse", "dowry",
	// Property law.
	"property", "land", "title", "deed", "registration", "mutation",
	"ownership", "inheritance", "estate", "lease",
	// Consumer law.
	"consumer", "defective", "refund", "warranty", "compensation",
	// Cyber law.
	"cyber", "hacking", "phishing", "online", "digital", "internet",
	// Intent carriers.
	"what", "how", "when", "where", "why", "who", "which",
	"punishment", "penalty", "sentence", "fine", "imprisonment",
	"procedure", "process", "rights", "law", "legal",
}

var sectionNumRe = regexp.MustCompile(`(?i)section\s+(\d+[a-z]?)`)

// LegalKeywords extracts the set of weighted legal keywords present in text,
// including normalized section-number tokens so "Section 420" in a query
// matches the same reference in a stored question.
func LegalKeywords(text string) map[string]bool {
	textLower := strings.ToLower(text)
	found := make(map[string]bool)
	for _, kw := range legalKeywords {
		if strings.Contains(textLower, kw) {
			found[kw] = true
		}
	}
	for _, m := range sectionNumRe.FindAllStringSubmatch(textLower, -1) {
		found["section"+m[1]] = true
	}
	return found
}
