package drill

import (
	"context"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// Presenter renders cards and collects the user's input. Methods are called
// from the Runner's goroutine only, one at a time.
//
// Methods documented as blocking return once the user has acted, or with
// ctx.Err() when ctx is canceled first.
type Presenter interface {
	// RenderLoading shows that a batch is being fetched.
	RenderLoading(ctx context.Context) error

	// RenderPrompt shows the word to translate.
	RenderPrompt(ctx context.Context, card PromptCard) error

	// CollectAnswer blocks until the user enters a translation for the
	// prompt last rendered. The value is returned as entered.
	CollectAnswer(ctx context.Context) (string, error)

	// ConfirmSkip blocks until the user decides whether an empty answer
	// should skip the word.
	ConfirmSkip(ctx context.Context) (bool, error)

	// RenderSubmitting shows that answers are being graded.
	RenderSubmitting(ctx context.Context, card CommitCard) error

	// RenderCommitResult shows the graded result and blocks until the user
	// acknowledges it.
	RenderCommitResult(ctx context.Context, card CommitCard, result domain.CommitResult) error

	// RenderTerminal shows a SessionEndCard or EmptyCard and blocks until
	// the user continues.
	RenderTerminal(ctx context.Context, card Card) error

	// RenderError shows a recoverable failure and blocks until the user
	// asks to retry.
	RenderError(ctx context.Context, err error) error

	// RenderAuthRequired tells the user that the session ended and they
	// need to sign in again.
	RenderAuthRequired(ctx context.Context, err error) error
}
