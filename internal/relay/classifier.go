package relay

import "strings"

// Token sets for the complexity heuristic. All matching is
// case-insensitive substring containment.
var (
	simpleTokens = []string{"hi", "hello", "bye", "see you"}

	interrogativeTokens = []string{"how", "why", "what", "which"}

	helpKeywords = []string{"help", "problem", "explain", "don't know", "need"}
)

// NeedsHuman decides whether a message is beyond the bot and should be
// escalated to the administrator. Greetings and farewells never
// escalate, even when they are also long. Otherwise a message
// escalates when it is long (more than 50 characters or more than 10
// words), looks like a question, or contains a help keyword.
func NeedsHuman(text string) bool {
	msg := strings.ToLower(text)

	if containsAny(msg, simpleTokens) {
		return false
	}

	isLong := len(text) > 50 || len(strings.Fields(text)) > 10
	isQuestion := strings.Contains(msg, "?") || containsAny(msg, interrogativeTokens)

	return isLong || isQuestion || containsAny(msg, helpKeywords)
}

func containsAny(msg string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}
