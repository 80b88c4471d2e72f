package knowledge

import (
	"encoding/json"
	"fmt"
)

// BuildPrompt composes the prompt sent to the generative backend. The
// full merged knowledge document rides along as structured context so
// the backend can prefer organization-specific facts when the question
// points at the club, and answer generically otherwise.
func BuildPrompt(question string, merged *Merged) string {
	context := "{}"
	if b, err := json.MarshalIndent(merged.Raw, "", "  "); err == nil {
		context = string(b)
	}

	clubName := merged.Typed.Club.Name
	if clubName == "" {
		clubName = "the club"
	}

	return fmt.Sprintf(`You are the website assistant for %s, a Leo club under Lions Clubs International.

Answer the visitor's question using the knowledge document below.

RULES:
1. If the question names the club or uses self-referential phrasing ("this club", "your club", "our club"), prioritize the club-specific facts in the document.
2. If the question is about the Leo program in general, answer generically from the leo_general facts.
3. Only state facts present in the document. If the document does not cover the question, say so briefly and suggest the Join, Projects or Contact pages.
4. Keep answers short: two to four sentences, plain text.

KNOWLEDGE DOCUMENT:
%s

QUESTION: %s`, clubName, context, question)
}
