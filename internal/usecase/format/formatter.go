// Package format renders a combined search answer into a conversational
// markdown response. The primary answer is always inserted verbatim; this
// package arranges it, it never rewrites it.
package format

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/refextract"
)

// longAnswerChars is the answer length beyond which key takeaways are added.
const longAnswerChars = 300

var greetings = map[Intent]string{
	IntentDefinition: "Let me explain that for you.",
	IntentProcedure:  "I'll walk you through the process step by step.",
	IntentRights:     "Here are your legal rights in this situation.",
	IntentPenalty:    "Here is what the law says about the consequences.",
	IntentFiling:     "I'll guide you through the filing process.",
}

var intentExplanations = map[Intent]string{
	IntentDefinition: "You want to understand the legal definition or meaning.",
	IntentProcedure:  "You want to know the legal procedure or steps to follow.",
	IntentRights:     "You want to know your legal rights in this situation.",
	IntentPenalty:    "You want to know about punishments or penalties.",
	IntentFiling:     "You want to know how to file a legal complaint or case.",
}

var closings = map[Intent]string{
	IntentDefinition: "Want to know more? Ask about related sections or practical applications.",
	IntentProcedure:  "Need more help? Feel free to ask follow-up questions about any step.",
	IntentRights:     "Remember: for advice specific to your case, consult a qualified lawyer.",
	IntentPenalty:    "Legal consequences vary with circumstances; consult a lawyer for your case.",
	IntentFiling:     "Keep copies of everything you file and note down important dates.",
}

// keyPointMarkers flag sentences worth surfacing as takeaways.
var keyPointMarkers = []string{
	"right", "must", "shall", "can", "cannot", "punishable", "required", "entitled",
}

// stepMarkers flag sentences that read as actionable steps.
var stepMarkers = []string{
	"file", "submit", "approach", "visit", "send", "apply", "register", "contact", "obtain",
}

// Format renders the combined answer for query as display text. The sentinel
// no-match answer and queries with no matching template come back as the
// primary answer text unmodified.
func Format(c result.Combined, query string) string {
	primary := c.Primary()
	if c.IsNoMatch() {
		return primary.Answer()
	}

	intent := DetectIntent(query)
	sections := refextract.Sections(query + " " + primary.Answer())
	acts := refextract.Acts(query + " " + primary.Answer())

	// No template applies: hand back the answer untouched.
	if intent == IntentGeneral && len(sections) == 0 && len(acts) == 0 && len(c.Supplementary()) == 0 {
		return primary.Answer()
	}

	var b strings.Builder

	if g, ok := greetings[intent]; ok {
		b.WriteString(g)
		b.WriteString("\n\n")
	}

	if expl := explain(intent, primary, sections); expl != "" {
		fmt.Fprintf(&b, "**%s**\n\n", expl)
	}

	b.WriteString("### Here's what you need to know\n\n")
	b.WriteString(paragraphs(primary.Answer()))
	b.WriteString("\n")

	if len(primary.Answer()) > longAnswerChars {
		if points := keyPoints(primary.Answer()); len(points) > 0 {
			b.WriteString("\n### Key takeaways\n")
			for _, p := range points {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
	}

	if intent == IntentProcedure || intent == IntentFiling {
		if s := steps(primary.Answer()); len(s) > 0 {
			b.WriteString("\n### What you should do\n")
			for i, step := range s {
				fmt.Fprintf(&b, "%d. %s\n", i+1, step)
			}
		}
	}

	if intent == IntentRights {
		b.WriteString("\n### Important to remember\n")
		b.WriteString("- These are your legal rights; don't hesitate to exercise them\n")
		b.WriteString("- Consider consulting a lawyer for advice on your specific situation\n")
	}

	if len(sections) > 0 || len(acts) > 0 {
		b.WriteString("\n### Legal references\n")
		if len(sections) > 0 {
			fmt.Fprintf(&b, "**Sections:** %s\n", strings.Join(sections, ", "))
		}
		if len(acts) > 0 {
			fmt.Fprintf(&b, "**Acts:** %s\n", strings.Join(acts, ", "))
		}
	}

	if supp := c.Supplementary(); len(supp) > 0 {
		b.WriteString("\n### Additional information\n")
		for i, r := range supp {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.Answer())
		}
		labels := make([]string, len(c.Sources()))
		for i, s := range c.Sources() {
			labels[i] = s.DisplayName()
		}
		fmt.Fprintf(&b, "\n**Sources:** %s\n", strings.Join(labels, "; "))
	}

	closing := closings[intent]
	if closing == "" {
		closing = "Have more questions? I'm here to help with any legal queries."
	}
	b.WriteString("\n")
	b.WriteString(closing)

	return b.String()
}

func explain(intent Intent, primary result.Result, sections []string) string {
	var parts []string
	if primary.Source() != "" {
		parts = append(parts, fmt.Sprintf("Your question is about %s.", primary.Source().DisplayName()))
	}
	if e, ok := intentExplanations[intent]; ok {
		parts = append(parts, e)
	}
	if len(sections) > 0 {
		parts = append(parts, fmt.Sprintf("This relates to Section(s) %s.", strings.Join(sections, ", ")))
	}
	return strings.Join(parts, " ")
}

// paragraphs regroups the answer into paragraphs of three sentences for
// readability; the text itself is untouched.
func paragraphs(answer string) string {
	sentences := splitSentences(answer)
	if len(sentences) <= 3 {
		return answer
	}
	var paras []string
	for i := 0; i < len(sentences); i += 3 {
		end := i + 3
		if end > len(sentences) {
			end = len(sentences)
		}
		paras = append(paras, strings.Join(sentences[i:end], " "))
	}
	return strings.Join(paras, "\n\n")
}

func keyPoints(answer string) []string {
	var points []string
	for _, s := range splitSentences(answer) {
		if len(points) == 4 {
			break
		}
		if len(s) < 20 {
			continue
		}
		if containsAny(strings.ToLower(s), keyPointMarkers) {
			points = append(points, strings.TrimSuffix(s, "."))
		}
	}
	return points
}

func steps(answer string) []string {
	var out []string
	for _, s := range splitSentences(answer) {
		if len(out) == 5 {
			break
		}
		if len(s) < 15 {
			continue
		}
		if containsAny(strings.ToLower(s), stepMarkers) {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// splitSentences is a period-based split; legal answers in the corpus use
// plain prose without abbreviation-heavy cites.
func splitSentences(text string) []string {
	raw := strings.Split(text, ". ")
	out := make([]string, 0, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if i < len(raw)-1 && !strings.HasSuffix(s, ".") {
			s += "."
		}
		out = append(out, s)
	}
	return out
}
