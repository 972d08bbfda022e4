package format

import "strings"

// Intent is a lightweight classification of what the user wants from the
// answer. It is independent of domain classification and drives template
// selection only.
type Intent string

const (
	IntentDefinition Intent = "definition"
	IntentProcedure  Intent = "procedure"
	IntentRights     Intent = "rights"
	IntentPenalty    Intent = "penalty"
	IntentFiling     Intent = "filing"
	IntentGeneral    Intent = "general"
)

var intentCues = []struct {
	intent Intent
	cues   []string
}{
	{IntentDefinition, []string{"what is", "define", "explain", "meaning"}},
	{IntentProcedure, []string{"how to", "procedure", "process", "steps"}},
	{IntentRights, []string{"can i", "am i", "do i have", "rights"}},
	{IntentPenalty, []string{"punishment", "penalty", "fine", "jail"}},
	{IntentFiling, []string{"file", "complaint", "case", "suit"}},
}

// DetectIntent classifies the query by keyword cues; the first matching
// intent in declaration order wins, defaulting to general.
func DetectIntent(query string) Intent {
	queryLower := strings.ToLower(query)
	for _, ic := range intentCues {
		for _, cue := range ic.cues {
			if strings.Contains(queryLower, cue) {
				return ic.intent
			}
		}
	}
	return IntentGeneral
}
