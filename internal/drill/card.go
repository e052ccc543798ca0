package drill

import (
	"fmt"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// Card is one discrete step of a pass. The set of cards is closed:
// PromptCard, CommitCard, SessionEndCard and EmptyCard.
type Card interface {
	// Kind names the card for logs and the web view.
	Kind() string
	isCard()
}

// Card kinds.
const (
	KindPrompt     = "prompt"
	KindCommit     = "commit"
	KindSessionEnd = "session_end"
	KindEmpty      = "empty"
)

// PromptCard shows one word and awaits one free-text translation.
type PromptCard struct {
	Direction  domain.Direction
	Word       domain.Word
	RepeatMode bool
}

// Question is the text shown to the user.
func (c PromptCard) Question() string {
	if c.Direction == domain.RuEn {
		return c.Word.RuWord
	}
	return c.Word.EnWord
}

// CommitCard submits every answer buffered since the previous commit and
// shows the graded result.
type CommitCard struct {
	RepeatMode bool
}

// SessionEndCard terminates a pass. WordCount is the number of distinct
// words drilled in the pass.
type SessionEndCard struct {
	RepeatMode bool
	WordCount  int
}

// EmptyCard is shown when a batch contains no words to learn.
type EmptyCard struct{}

func (PromptCard) Kind() string     { return KindPrompt }
func (CommitCard) Kind() string     { return KindCommit }
func (SessionEndCard) Kind() string { return KindSessionEnd }
func (EmptyCard) Kind() string      { return KindEmpty }

func (PromptCard) isCard()     {}
func (CommitCard) isCard()     {}
func (SessionEndCard) isCard() {}
func (EmptyCard) isCard()      {}

// UnknownCardError is returned when a card outside the closed set reaches
// the session. Such a card is never skipped silently.
type UnknownCardError struct {
	Card Card
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card type %T", e.Card)
}
