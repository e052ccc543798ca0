// Package drill implements the vocabulary drill session: the card queue
// built from a word batch, the session state machine that consumes it, and
// the Runner that connects the state machine to a Presenter.
//
// A pass over a batch drills every word in both directions. Fresh words are
// drilled LearnRepeats times, words due for review RepeatLearnRepeats times.
// Answers are buffered and submitted for grading at every Commit card.
//
// The Session is synchronous and decision-free; all user interaction,
// including the confirmation required to skip a prompt, lives in the Runner
// and the Presenter.
package drill
