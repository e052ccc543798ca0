// Package ui holds the wording shared by the terminal and browser
// presenters.
package ui

import (
	"fmt"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/drill"
	"github.com/phrazzld/scry-drill/internal/redact"
)

// User-facing strings.
const (
	RepeatLabel     = "Repeat"
	ResultTitle     = "Result"
	LoadingText     = "Loading..."
	SkipQuestion    = "Skip this word?"
	NothingToLearn  = "Nothing to learn :("
	ContinueRepeat  = "Continue learning"
	AuthRequiredMsg = "Your session has expired. Sign in to the grading service again and restart drill."
)

// MistakeColumns are the headers of the mistakes table.
var MistakeColumns = []string{"Correct", "Translate", "Yours"}

// TerminalMessage returns the headline for a SessionEndCard or EmptyCard.
func TerminalMessage(card drill.Card) string {
	switch c := card.(type) {
	case drill.SessionEndCard:
		if c.RepeatMode {
			return ContinueRepeat
		}
		return fmt.Sprintf("Congratulations! You learned %d %s. Press Continue to learn next words",
			c.WordCount, plural(c.WordCount, "word", "words"))
	case drill.EmptyCard:
		return NothingToLearn
	default:
		return ""
	}
}

// ErrorMessage returns the text shown for a recoverable failure. Secrets
// that might appear in the error are masked.
func ErrorMessage(err error) string {
	return "Something went wrong: " + redact.Error(err)
}

// PromptDetails returns the transcription and part-of-speech lines of an
// EN→RU prompt. RU→EN prompts show no details.
func PromptDetails(card drill.PromptCard) (transcription, pos string) {
	if card.Direction != domain.EnRu {
		return "", ""
	}
	if card.Word.EnTranscription != "" {
		transcription = "[" + card.Word.EnTranscription + "]"
	}
	return transcription, card.Word.EnPos
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
