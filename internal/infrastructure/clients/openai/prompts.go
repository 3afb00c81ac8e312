package openai

import "fmt"

const patternSystemPrompt = `You classify short-video ad captions into creative pattern categories.
Respond with a single JSON object and nothing else, using these keys:
hook_type, format, proof_type, objection_handled, cta_style, confidence.
confidence is a number between 0 and 1. Use "None" when a category does not
apply and "" for objection_handled when no objection is addressed.`

func buildPatternUserPrompt(caption string) string {
	return fmt.Sprintf("Classify the creative patterns of this caption:\n\n%s", caption)
}
