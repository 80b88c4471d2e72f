package domain

// AnswerOrigin records which path produced an answer.
type AnswerOrigin string

const (
	// OriginLocal means the rule-based matcher answered authoritatively.
	OriginLocal AnswerOrigin = "local"
	// OriginGenerated means the generative backend produced the answer.
	OriginGenerated AnswerOrigin = "generated"
	// OriginFallback means a generative call was attempted and failed,
	// and the best available local text was returned instead.
	OriginFallback AnswerOrigin = "fallback"
)

// AnswerResult is the outcome of answering a question. It is always
// well-formed; failures upstream degrade the origin, never the shape.
type AnswerResult struct {
	Text   string       `json:"text"`
	Origin AnswerOrigin `json:"origin"`
}
