package knowledge

import (
	"context"
	"log"
	"strings"

	"github.com/lcac-club/clubsite/internal/domain"
)

// apologyAnswer is returned when the generative backend fails and the
// matcher produced nothing usable.
const apologyAnswer = "Sorry, I could not find an answer to that right now. " + UsageHint

// Generator is the generative backend adapter. A nil Generator means
// local answers are always used.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Router answers questions by combining the local rule-based matcher
// with an optional generative backend. All backend failures are caught
// and downgraded; Answer never returns an error.
type Router struct {
	store       *Store
	matcher     *Matcher
	gen         Generator
	defaultDocs []string
	minLocalLen int
}

type RouterOptions struct {
	// DefaultDocs are the knowledge documents loaded when a request
	// carries no context file list.
	DefaultDocs []string
	// MinLocalLen is the length a keyword-matched local answer must
	// exceed to be considered substantial.
	MinLocalLen int
}

func NewRouter(store *Store, matcher *Matcher, gen Generator, opts RouterOptions) *Router {
	minLen := opts.MinLocalLen
	if minLen <= 0 {
		minLen = 50
	}
	return &Router{
		store:       store,
		matcher:     matcher,
		gen:         gen,
		defaultDocs: opts.DefaultDocs,
		minLocalLen: minLen,
	}
}

// Answer resolves a question to an AnswerResult. The local matcher
// runs first; the generative backend is consulted only when the local
// answer is not authoritative for the question.
func (r *Router) Answer(ctx context.Context, question string, contextFiles []string) domain.AnswerResult {
	docs := contextFiles
	if len(docs) == 0 {
		docs = r.defaultDocs
	}
	merged := r.store.Load(docs)

	candidate, matched := r.matcher.Classify(question, merged.Typed)

	if r.gen == nil || r.localAuthoritative(question, merged.Typed, candidate, matched) {
		return candidate
	}

	text, err := r.gen.Complete(ctx, BuildPrompt(question, merged))
	if err != nil {
		log.Printf("knowledge: generative backend failed, using local answer: %v", err)
		if matched {
			return candidate
		}
		return domain.AnswerResult{Text: apologyAnswer, Origin: domain.OriginFallback}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("knowledge: generative backend returned empty answer")
		if matched {
			return candidate
		}
		return domain.AnswerResult{Text: apologyAnswer, Origin: domain.OriginFallback}
	}
	return domain.AnswerResult{Text: text, Origin: domain.OriginGenerated}
}

// mediumTopics are question keywords the local knowledge usually
// covers well enough to skip the backend.
var mediumTopics = []string{
	"join", "board", "contact", "motto", "application",
	"projects", "members", "activities",
}

// localAuthoritative applies the priority test over the raw question
// text. High-priority organization cues always trust the local answer;
// medium-priority topics trust it only when it is substantial and
// non-generic; anything else delegates.
func (r *Router) localAuthoritative(question string, k domain.Knowledge, candidate domain.AnswerResult, matched bool) bool {
	q := Normalize(question)

	if mentionsOrg(q, k) || selfReferential(q) {
		return true
	}

	if containsAny(q, mediumTopics...) && !genericProgramOnly(q, k) {
		return matched && !isGenericAnswer(candidate.Text) && len(candidate.Text) > r.minLocalLen
	}

	return false
}

// genericProgramOnly reports whether the question asks about the Leo
// program in general, with no organization-specific or
// self-referential cue.
func genericProgramOnly(q string, k domain.Knowledge) bool {
	return definitionCue(q) && !mentionsOrg(q, k) && !selfReferential(q)
}

// isGenericAnswer detects matcher output that carries the usage hint,
// i.e. a shrug rather than a substantive answer.
func isGenericAnswer(text string) bool {
	return strings.Contains(text, "Try asking:")
}
