// Package safety implements lexical risk classification for chat input.
//
// Every inbound message is scanned against two ordered keyword tiers: a
// high-priority self-harm tier and a general crisis tier. Matching is
// case-insensitive and word-boundary delimited, so a keyword never fires
// inside an unrelated larger word. The classifier is pure and performs
// no I/O; matched keywords are surfaced as reasons for auditability.
package safety

import "regexp"

// RiskLevel is the urgency classification of a message.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Assessment is the result of classifying one message. It is a derived
// value: it is stored denormalized on messages, never as its own entity.
type Assessment struct {
	RiskLevel RiskLevel `json:"risk_level"`
	Reasons   []string  `json:"reasons"`
}

var selfHarmKeywords = []string{
	"cut myself",
	"cutting",
	"self harm",
	"self-harm",
	"hurt myself",
	"suicide",
	"kill myself",
	"suicidal",
	"want to die",
	"end my life",
	"wrist",
	"razor",
	"pills",
	"overdose",
	"hang myself",
	"jump",
}

var crisisKeywords = []string{
	"crisis",
	"emergency",
	"danger",
	"threat",
	"violence",
	"panic attack",
	"severe anxiety",
}

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

var (
	selfHarmPatterns = compileTier(selfHarmKeywords)
	crisisPatterns   = compileTier(crisisKeywords)
)

func compileTier(keywords []string) []keywordPattern {
	patterns := make([]keywordPattern, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, keywordPattern{
			keyword: kw,
			re:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}
	return patterns
}

// Classify scans text against both keyword tiers and returns the risk
// level with the matched keywords as reasons.
//
// The high tier wins outright: if any self-harm keyword matches, all
// self-harm matches become the reasons and the crisis tier is not
// consulted. With no match in either tier the result is low risk with an
// empty (non-nil) reason list.
func Classify(text string) Assessment {
	reasons := matchTier(selfHarmPatterns, text)
	if len(reasons) > 0 {
		return Assessment{RiskLevel: RiskHigh, Reasons: reasons}
	}

	reasons = matchTier(crisisPatterns, text)
	if len(reasons) > 0 {
		return Assessment{RiskLevel: RiskMedium, Reasons: reasons}
	}

	return Assessment{RiskLevel: RiskLow, Reasons: []string{}}
}

func matchTier(patterns []keywordPattern, text string) []string {
	matched := []string{}
	for _, p := range patterns {
		if p.re.MatchString(text) {
			matched = append(matched, p.keyword)
		}
	}
	return matched
}

// CrisisResponse is the scripted reply for high-risk messages. The
// generative backend is never consulted on this path.
func CrisisResponse() string {
	return "I'm concerned about what you're sharing. Your wellbeing is important. " +
		"If you're having thoughts of self-harm or suicide, please reach out to a crisis service immediately. " +
		"I can share resources with you. Please visit the Crisis Support page or continue the conversation " +
		"if you'd like to talk."
}

// MediumSupportResponse is the scripted reply for medium-risk messages.
func MediumSupportResponse() string {
	return "What you're experiencing sounds challenging. I'm here to listen and support you. " +
		"If you feel like you need immediate help, please don't hesitate to reach out to a mental health " +
		"professional or crisis service. Would you like to explore some coping strategies, or would you " +
		"prefer information on professional support?"
}
