package domain

import "fmt"

// Direction is the translation direction of a prompt.
type Direction string

const (
	// EnRu shows the English word and asks for the Russian translation.
	EnRu Direction = "en_ru"
	// RuEn shows the Russian word and asks for the English translation.
	RuEn Direction = "ru_en"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == EnRu || d == RuEn
}

// Answer is the user's translation of one prompted word. Exactly one of
// RuWord and EnWord is set, matching the direction of the prompt. A skipped
// prompt still produces an answer whose field is the empty string.
type Answer struct {
	ID     int     `json:"id"`
	RuWord *string `json:"ru_word,omitempty"`
	EnWord *string `json:"en_word,omitempty"`
}

// NewAnswer builds the answer for a prompt of the given direction.
func NewAnswer(id int, dir Direction, value string) (Answer, error) {
	switch dir {
	case EnRu:
		return Answer{ID: id, RuWord: &value}, nil
	case RuEn:
		return Answer{ID: id, EnWord: &value}, nil
	default:
		return Answer{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
}

// Direction returns the direction this answer was given for.
func (a Answer) Direction() Direction {
	if a.RuWord != nil {
		return EnRu
	}
	return RuEn
}

// Value returns the populated translation.
func (a Answer) Value() string {
	switch {
	case a.RuWord != nil:
		return *a.RuWord
	case a.EnWord != nil:
		return *a.EnWord
	default:
		return ""
	}
}

// Validate checks that exactly one translation field is populated.
func (a Answer) Validate() error {
	if (a.RuWord == nil) == (a.EnWord == nil) {
		return fmt.Errorf("%w: word %d must carry exactly one translation", ErrInvalidAnswer, a.ID)
	}
	return nil
}

// Mistake is one graded wrong answer.
type Mistake struct {
	Correct   string `json:"correct"`
	Translate string `json:"translate"`
	Answer    string `json:"answer"`
}

// CommitResult is the grading service's verdict on one submitted batch of
// answers.
type CommitResult struct {
	Correct  int       `json:"correct"`
	Mistakes []Mistake `json:"mistakes"`
}
