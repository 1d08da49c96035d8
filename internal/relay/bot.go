package relay

import (
	"fmt"
	"strings"
)

// Canned response patterns, checked in priority order: greeting,
// farewell, then the one trivia question. First match wins.
var (
	greetingTokens = []string{"hi", "hello"}
	farewellTokens = []string{"bye", "see you"}

	triviaPattern = "what is the capital of brazil"
)

// Respond returns the bot's canned reply for a message, or ok=false
// when the message has no fixed answer and the caller should fall
// through to classification. Matching is case-insensitive substring
// containment and every reply embeds the sender's display name.
func Respond(text, username string) (string, bool) {
	msg := strings.ToLower(text)

	switch {
	case containsAny(msg, greetingTokens):
		return fmt.Sprintf("Bot: Olá, %s! Como posso ajudar?", username), true
	case containsAny(msg, farewellTokens):
		return fmt.Sprintf("Bot: Até logo, %s!", username), true
	case strings.Contains(msg, triviaPattern):
		return fmt.Sprintf("Bot: A capital do Brasil é Brasília, %s!", username), true
	}
	return "", false
}
