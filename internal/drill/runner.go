package drill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-drill/internal/redact"
	"github.com/phrazzld/scry-drill/internal/wordclient"
)

// Runner drives a Session with a Presenter: it renders the front card,
// waits for the user and calls the matching Session operation.
type Runner struct {
	session   *Session
	presenter Presenter
	logger    *slog.Logger
}

// NewRunner creates a Runner. A nil logger uses slog.Default.
func NewRunner(session *Session, presenter Presenter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		session:   session,
		presenter: presenter,
		logger: logger.With(
			"component", "drill_runner",
			"session_id", session.ID().String(),
		),
	}
}

// Run loops until ctx is canceled, the session is closed or the backend
// requires re-authentication. The latter returns an error matching
// wordclient.ErrAuth.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		card, ok := r.session.Current()
		if !ok {
			if err := r.start(ctx); err != nil {
				return err
			}
			continue
		}

		var err error
		switch c := card.(type) {
		case PromptCard:
			err = r.prompt(ctx, c)
		case CommitCard:
			err = r.commit(ctx, c)
		case SessionEndCard:
			err = r.sessionEnd(ctx, c)
		case EmptyCard:
			err = r.empty(ctx, c)
		default:
			return &UnknownCardError{Card: card}
		}
		if err != nil {
			return err
		}
	}
}

func (r *Runner) start(ctx context.Context) error {
	if err := r.presenter.RenderLoading(ctx); err != nil {
		return err
	}
	return r.recoverStart(ctx, r.session.Start(ctx))
}

// recoverStart keeps retrying a failed Start for as long as the user asks.
func (r *Runner) recoverStart(ctx context.Context, err error) error {
	for err != nil {
		if ferr := r.fatal(ctx, err); ferr != nil {
			return ferr
		}
		if perr := r.presenter.RenderError(ctx, err); perr != nil {
			return perr
		}
		r.logger.InfoContext(ctx, "retrying batch fetch")
		if perr := r.presenter.RenderLoading(ctx); perr != nil {
			return perr
		}
		err = r.session.Start(ctx)
	}
	return nil
}

func (r *Runner) prompt(ctx context.Context, card PromptCard) error {
	if err := r.presenter.RenderPrompt(ctx, card); err != nil {
		return err
	}
	for {
		value, err := r.presenter.CollectAnswer(ctx)
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			skip, err := r.presenter.ConfirmSkip(ctx)
			if err != nil {
				return err
			}
			if !skip {
				continue
			}
		}
		return r.session.Answer(ctx, value)
	}
}

func (r *Runner) commit(ctx context.Context, card CommitCard) error {
	for {
		if err := r.presenter.RenderSubmitting(ctx, card); err != nil {
			return err
		}
		result, err := r.session.Commit(ctx)
		if err == nil {
			if err := r.presenter.RenderCommitResult(ctx, card, result); err != nil {
				return err
			}
			return r.session.Acknowledge()
		}
		if ferr := r.fatal(ctx, err); ferr != nil {
			return ferr
		}
		if perr := r.presenter.RenderError(ctx, err); perr != nil {
			return perr
		}
		r.logger.InfoContext(ctx, "retrying answer submission")
	}
}

func (r *Runner) sessionEnd(ctx context.Context, card SessionEndCard) error {
	if err := r.presenter.RenderTerminal(ctx, card); err != nil {
		return err
	}
	if card.RepeatMode {
		return r.session.Continue(ctx)
	}
	if err := r.presenter.RenderLoading(ctx); err != nil {
		return err
	}
	return r.recoverStart(ctx, r.session.Continue(ctx))
}

func (r *Runner) empty(ctx context.Context, card EmptyCard) error {
	if err := r.presenter.RenderTerminal(ctx, card); err != nil {
		return err
	}
	return r.start(ctx)
}

// fatal returns a non-nil error when err cannot be recovered by retrying.
func (r *Runner) fatal(ctx context.Context, err error) error {
	switch {
	case wordclient.IsAuth(err):
		r.logger.WarnContext(ctx, "re-authentication required", "error", redact.Error(err))
		if perr := r.presenter.RenderAuthRequired(ctx, err); perr != nil {
			return errors.Join(err, perr)
		}
		return fmt.Errorf("session abandoned: %w", err)
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, ErrClosed), errors.Is(err, ErrBusy):
		return err
	}
	return nil
}
