package knowledge

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lcac-club/clubsite/internal/domain"
)

// Generic sentences used when a rule applies but the knowledge tree
// has no populated field for it. "No data" is not distinguished from
// "rule didn't apply" at this layer.
const (
	genericWhatIsLeo  = "LEO stands for Leadership, Experience, Opportunity — youth service clubs under Lions Clubs International."
	genericAgeRange   = "Leo Clubs typically serve youth and young adults; exact range varies by club and district."
	genericBenefits   = "Benefits include leadership development, teamwork, networking, and community impact."
	genericActivities = "Typical activities: community service, leadership training, and fundraising projects."
	genericJoin       = "Complete the application and attend an orientation (if applicable)."
	genericContact    = "Please reach out via our social channels."
	genericBoard      = "Board details will be published on the Board page once finalized."
	genericProjects   = "We regularly run service and leadership projects; check the Projects page for updates."
	genericMotto      = "Born to Serve"
	genericMobileApp  = "Our mobile app is coming soon. Watch the Mobile App page for updates."

	// UsageHint is appended to fallback answers so the router can tell
	// a substantive local answer from a shrug.
	UsageHint = `Try asking: "How to join?", "Recent projects?", "Board for this year?", "Contact?"`
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
var spaces = regexp.MustCompile(`\s+`)

// Normalize lower-cases the question, strips characters outside
// [a-z0-9 ], collapses whitespace runs and trims.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, " ")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func containsAny(q string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

func containsAll(q string, terms ...string) bool {
	for _, t := range terms {
		if !strings.Contains(q, t) {
			return false
		}
	}
	return true
}

// selfReferential reports whether the question points at this club
// rather than the Leo program in general.
func selfReferential(q string) bool {
	return containsAny(q, "this club", "your club", "our club", "this leo club", "your leo club")
}

// aboutCue reports whether the question asks for an introduction.
func aboutCue(q string) bool {
	return containsAny(q, "about", "tell me", "who are", "what is", "what are")
}

// mentionsOrg reports whether the normalized question contains the
// club's identifying phrase.
func mentionsOrg(q string, k domain.Knowledge) bool {
	name := Normalize(k.Club.Name)
	return name != "" && strings.Contains(q, name)
}

// definitionCue reports whether the question asks what the Leo
// program is.
func definitionCue(q string) bool {
	return containsAll(q, "what", "leo") || strings.Contains(q, "leo club")
}

// Rule couples a predicate over the normalized question with a handler
// that composes an answer from the typed knowledge tree. Rules are
// pure: they read knowledge, never mutate it.
type Rule struct {
	Name   string
	Match  func(q string, k domain.Knowledge) bool
	Answer func(q string, k domain.Knowledge) string
}

// Matcher evaluates an ordered rule table, first match wins. There is
// no scoring and no backtracking; precedence is the table order.
type Matcher struct {
	rules []Rule
}

func NewMatcher() *Matcher {
	return &Matcher{rules: defaultRules()}
}

// Classify normalizes the question and walks the rule table. The
// boolean is false only when no rule applied and the not-found hint
// was composed instead; the returned result is usable either way.
func (m *Matcher) Classify(question string, k domain.Knowledge) (domain.AnswerResult, bool) {
	q := Normalize(question)
	for _, r := range m.rules {
		if r.Match(q, k) {
			return domain.AnswerResult{Text: r.Answer(q, k), Origin: domain.OriginLocal}, true
		}
	}
	return domain.AnswerResult{Text: notFoundAnswer(k), Origin: domain.OriginLocal}, false
}

func defaultRules() []Rule {
	return []Rule{
		{
			// The club's proper name, or a self-referential phrase plus
			// an about cue, answers with the club's own identity.
			// Self-referential definition questions fall through to the
			// blended rule below.
			Name: "direct-entity",
			Match: func(q string, k domain.Knowledge) bool {
				return mentionsOrg(q, k) || (selfReferential(q) && aboutCue(q) && !definitionCue(q))
			},
			Answer: directEntityAnswer,
		},
		{
			// Self-referential definition questions get a blended answer:
			// club facts first, generic definition appended. Must run
			// before the plain generic-definition rule.
			Name: "blended-definition",
			Match: func(q string, k domain.Knowledge) bool {
				return definitionCue(q) && selfReferential(q)
			},
			Answer: func(q string, k domain.Knowledge) string {
				club := directEntityAnswer(q, k)
				return club + " " + whatIsLeo(k)
			},
		},
		{
			Name: "generic-definition",
			Match: func(q string, k domain.Knowledge) bool {
				return definitionCue(q)
			},
			Answer: func(q string, k domain.Knowledge) string {
				return whatIsLeo(k)
			},
		},
		{
			Name: "age-range",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "age", "ages", "how old")
			},
			Answer: func(q string, k domain.Knowledge) string {
				return firstNonEmpty(k.LeoGeneral.AgeRange, genericAgeRange)
			},
		},
		{
			Name: "benefits",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "benefit", "why join")
			},
			Answer: func(q string, k domain.Knowledge) string {
				return firstNonEmpty(k.LeoGeneral.Benefits, genericBenefits)
			},
		},
		{
			Name: "activities",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "activit", "events")
			},
			Answer: func(q string, k domain.Knowledge) string {
				return firstNonEmpty(k.LeoGeneral.Activities, genericActivities)
			},
		},
		{
			Name: "join",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "join", "apply", "membership", "become member")
			},
			Answer: joinAnswer,
		},
		{
			Name: "contact",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "contact", "email", "reach you")
			},
			Answer: contactAnswer,
		},
		{
			Name: "board",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "board", "committee", "exco", "office")
			},
			Answer: boardAnswer,
		},
		{
			Name: "projects",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "project", "recent", "initiative")
			},
			Answer: projectsAnswer,
		},
		{
			Name: "motto",
			Match: func(q string, k domain.Knowledge) bool {
				return strings.Contains(q, "motto")
			},
			Answer: func(q string, k domain.Knowledge) string {
				return firstNonEmpty(k.Club.Motto, genericMotto)
			},
		},
		{
			Name: "mobile-app",
			Match: func(q string, k domain.Knowledge) bool {
				return containsAny(q, "app", "mobile")
			},
			Answer: func(q string, k domain.Knowledge) string {
				return genericMobileApp
			},
		},
		{
			// Still mentions the program: answer with the definition and
			// a usage hint.
			Name: "leo-hint",
			Match: func(q string, k domain.Knowledge) bool {
				return strings.Contains(q, "leo")
			},
			Answer: func(q string, k domain.Knowledge) string {
				return whatIsLeo(k) + "\n" + UsageHint
			},
		},
	}
}

func directEntityAnswer(q string, k domain.Knowledge) string {
	var parts []string
	if k.Club.Name != "" && k.Club.Description != "" {
		parts = append(parts, fmt.Sprintf("%s — %s", k.Club.Name, k.Club.Description))
	} else if k.Club.Name != "" {
		parts = append(parts, k.Club.Name)
	}
	if k.Club.Motto != "" {
		parts = append(parts, fmt.Sprintf("Motto: %s.", k.Club.Motto))
	}
	if len(parts) == 0 {
		return whatIsLeo(k)
	}
	return strings.Join(parts, " ")
}

func joinAnswer(q string, k domain.Knowledge) string {
	how := firstNonEmpty(k.Club.Join.How, genericJoin)
	if k.Club.Join.FormURL != "" {
		return how + " " + k.Club.Join.FormURL
	}
	return how
}

func contactAnswer(q string, k domain.Knowledge) string {
	var parts []string
	if k.Club.Contact.Email != "" {
		parts = append(parts, "Email: "+k.Club.Contact.Email)
	}
	for _, channel := range sortedKeys(k.Club.Contact.Social) {
		parts = append(parts, capitalize(channel)+": "+k.Club.Contact.Social[channel])
	}
	if len(parts) == 0 {
		return genericContact
	}
	return strings.Join(parts, " · ")
}

func boardAnswer(q string, k domain.Knowledge) string {
	year := ""
	if k.Club.Board.Year != "" {
		year = fmt.Sprintf(" (%s)", k.Club.Board.Year)
	}
	note := firstNonEmpty(k.Club.Board.Note, genericBoard)
	return fmt.Sprintf("Board%s: %s", year, note)
}

func projectsAnswer(q string, k domain.Knowledge) string {
	projects := k.Club.Projects
	if len(projects) == 0 {
		return genericProjects
	}
	if len(projects) > 3 {
		projects = projects[:3]
	}
	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		line := "• " + p.Title
		if p.Description != "" {
			line += " — " + p.Description
		}
		lines = append(lines, line)
	}
	return "Recent projects:\n" + strings.Join(lines, "\n")
}

func notFoundAnswer(k domain.Knowledge) string {
	name := firstNonEmpty(k.Club.Name, "our club")
	return fmt.Sprintf("I don't have that answer yet for %s. %s", name, UsageHint)
}

func whatIsLeo(k domain.Knowledge) string {
	return firstNonEmpty(k.LeoGeneral.WhatIsLeo, genericWhatIsLeo)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// deterministic composition order for map-backed social handles
	sort.Strings(keys)
	return keys
}
