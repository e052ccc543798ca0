package drill

import "github.com/phrazzld/scry-drill/internal/domain"

const (
	// LearnRepeats is how often fresh words are drilled in one pass.
	LearnRepeats = 3
	// RepeatLearnRepeats is how often words due for review are drilled.
	RepeatLearnRepeats = 1
)

// Build produces the cards of one pass over words.
//
// Each repeat drills every word EN→RU, commits, drills every word RU→EN and
// commits again; the pass ends with a SessionEndCard. An empty word list
// yields a single EmptyCard. repeats below one count as one.
func Build(words []domain.Word, repeatMode bool, repeats int) []Card {
	if len(words) == 0 {
		return []Card{EmptyCard{}}
	}
	if repeats < 1 {
		repeats = 1
	}

	cards := make([]Card, 0, repeats*(2*len(words)+2)+1)
	for r := 0; r < repeats; r++ {
		for _, dir := range []domain.Direction{domain.EnRu, domain.RuEn} {
			for _, w := range words {
				cards = append(cards, PromptCard{Direction: dir, Word: w, RepeatMode: repeatMode})
			}
			cards = append(cards, CommitCard{RepeatMode: repeatMode})
		}
	}
	return append(cards, SessionEndCard{RepeatMode: repeatMode, WordCount: len(words)})
}

// BuildBatch produces the full queue for a batch: the review pass, when
// there are words to review, followed by the learning pass.
func BuildBatch(batch domain.Batch, learnRepeats, repeatRepeats int) []Card {
	var cards []Card
	if len(batch.Repeat) > 0 {
		cards = Build(batch.Repeat, true, repeatRepeats)
	}
	return append(cards, Build(batch.Learn, false, learnRepeats)...)
}
