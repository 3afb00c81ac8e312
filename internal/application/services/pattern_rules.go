package services

import (
	"regexp"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
)

// heuristicConfidenceCap keeps heuristic confidence below what the LLM path
// can report, so downstream consumers can tell the two apart.
const heuristicConfidenceCap = 0.85

type patternRule struct {
	label      string
	confidence float64
	match      func(caption string) bool
}

func anyOf(terms ...string) func(string) bool {
	return func(caption string) bool {
		for _, term := range terms {
			if strings.Contains(caption, term) {
				return true
			}
		}
		return false
	}
}

var (
	painPointRe = regexp.MustCompile(`stop (wasting|paying|using|trying)`)
	listicleRe  = regexp.MustCompile(`\b\d+\s+(reasons|ways|tips|tools|things|mistakes|features|apps|hacks)\b`)
	percentRe   = regexp.MustCompile(`\d+\s*%|\d+x\b`)
)

// hookRules run in order; the first match wins
var hookRules = []patternRule{
	{"POV / Relatable", 0.9, func(c string) bool { return strings.HasPrefix(c, "pov:") }},
	{"Pain point callout", 0.85, painPointRe.MatchString},
	{"Curiosity hook", 0.8, anyOf("you won't believe", "wait for it", "nobody talks about", "the secret")},
	{"Authority / Research", 0.8, anyOf("study", "research shows", "experts", "according to")},
	{"Myth busting", 0.75, anyOf("myth", "the truth about", "stop believing", "actually wrong")},
	{"Feature highlight", 0.7, anyOf("this feature", "did you know", "new feature")},
	{"Hack / Tip", 0.7, anyOf("hack", "trick", "pro tip")},
	{"Use case", 0.65, anyOf("how i use", "i use this", "use it to")},
	{"Value proposition", 0.65, anyOf("save time", "save money", "in seconds", "in minutes")},
	{"Warning / Caution", 0.7, anyOf("warning", "don't buy", "before you buy")},
}

var formatRules = []patternRule{
	{"Before/After", 0.85, anyOf("before and after", "before/after", "transformation")},
	{"Demo", 0.8, anyOf("demo", "watch me", "let me show you")},
	{"Listicle", 0.8, listicleRe.MatchString},
	{"Tutorial", 0.75, anyOf("how to", "tutorial", "step by step")},
	{"Review", 0.7, anyOf("review", "i tested", "i tried")},
	{"Comparison", 0.75, anyOf(" vs ", "versus", "compared to")},
	{"Testimonial", 0.7, anyOf("changed my life", "i was skeptical", "customers say")},
	{"Behind the scenes", 0.7, anyOf("behind the scenes", "bts")},
}

var proofRules = []patternRule{
	{"Numbers / Data", 0, percentRe.MatchString},
	{"Screen demo", 0, anyOf("screen record", "watch it work", "live demo")},
	{"Social proof", 0, anyOf("reviews", "customers", "users love", "rated")},
	{"Before/After", 0, anyOf("before and after", "results")},
}

var objectionRules = []patternRule{
	{"Price", 0, anyOf("too expensive", "can't afford", "worth the money", "cheaper")},
	{"Complexity", 0, anyOf("too complicated", "hard to use", "easy to use", "no setup")},
	{"Trust", 0, anyOf("scam", "legit", "actually works")},
	{"Time", 0, anyOf("no time", "takes forever", "too long")},
}

var ctaRules = []patternRule{
	{"Link in bio", 0, anyOf("link in bio", "link in my bio")},
	{"Comment prompt", 0, anyOf("comment", "let me know below")},
	{"Follow prompt", 0, anyOf("follow for", "follow me")},
	{"Direct signup", 0, anyOf("sign up", "try it free", "download", "get started")},
	{"Share prompt", 0, anyOf("share this", "send this to")},
}

func firstMatch(rules []patternRule, caption string) (string, float64, bool) {
	for _, rule := range rules {
		if rule.match(caption) {
			return rule.label, rule.confidence, true
		}
	}
	return "", 0, false
}

// ExtractPatternsHeuristic classifies a caption against the fixed rule
// tables. An empty caption yields the low-confidence unknown result.
func ExtractPatternsHeuristic(caption string) *entities.UGCPatterns {
	caption = strings.TrimSpace(strings.ToLower(caption))
	if caption == "" {
		return &entities.UGCPatterns{
			HookType:   "Unknown",
			Format:     "Unknown",
			ProofType:  "None",
			CTAStyle:   "None",
			Confidence: 0.1,
		}
	}

	hook, hookConf, ok := firstMatch(hookRules, caption)
	if !ok {
		hook, hookConf = "General", 0.5
	}
	format, formatConf, ok := firstMatch(formatRules, caption)
	if !ok {
		format, formatConf = "General", 0.4
	}

	proof, _, hasProof := firstMatch(proofRules, caption)
	if !hasProof {
		proof = "None"
	}
	objection, _, hasObjection := firstMatch(objectionRules, caption)
	cta, _, hasCTA := firstMatch(ctaRules, caption)
	if !hasCTA {
		cta = "None"
	}

	confidence := (hookConf + formatConf +
		presenceScore(hasProof) + presenceScore(hasObjection) + presenceScore(hasCTA)) / 5
	if confidence > heuristicConfidenceCap {
		confidence = heuristicConfidenceCap
	}

	return &entities.UGCPatterns{
		HookType:         hook,
		Format:           format,
		ProofType:        proof,
		ObjectionHandled: objection,
		CTAStyle:         cta,
		Confidence:       confidence,
	}
}

func presenceScore(present bool) float64 {
	if present {
		return 0.8
	}
	return 0.3
}
