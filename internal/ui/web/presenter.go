// Package web implements drill.Presenter for a browser. The Runner calls
// the presenter methods; each call publishes a View that the page polls
// and, where the call needs the user, waits for the matching action posted
// by the page.
package web

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/drill"
	"github.com/phrazzld/scry-drill/internal/redact"
	"github.com/phrazzld/scry-drill/internal/ui"
)

// View kinds.
const (
	ViewLoading      = "loading"
	ViewPrompt       = "prompt"
	ViewSubmitting   = "submitting"
	ViewResult       = "result"
	ViewTerminal     = "terminal"
	ViewError        = "error"
	ViewAuthRequired = "auth_required"
)

// Actions a view can expect.
const (
	ActionAnswer  = "answer"
	ActionConfirm = "confirm"
	ActionAck     = "ack"
	ActionRetry   = "retry"
)

// ErrUnexpectedAction is returned when the page posts an action the current
// view does not expect.
var ErrUnexpectedAction = errors.New("action not expected by the current view")

// View is the snapshot the page renders.
type View struct {
	Seq           uint64               `json:"seq"`
	Kind          string               `json:"kind"`
	Expects       string               `json:"expects,omitempty"`
	Repeat        bool                 `json:"repeat"`
	Card          string               `json:"card,omitempty"`
	Direction     domain.Direction     `json:"direction,omitempty"`
	Word          string               `json:"word,omitempty"`
	Transcription string               `json:"transcription,omitempty"`
	Pos           string               `json:"pos,omitempty"`
	Message       string               `json:"message,omitempty"`
	Result        *domain.CommitResult `json:"result,omitempty"`
}

type action struct {
	kind  string
	value string
	skip  bool
}

// Presenter is a drill.Presenter backed by an HTTP API.
type Presenter struct {
	logger *slog.Logger

	mu      sync.Mutex
	view    View
	actions chan action
}

var _ drill.Presenter = (*Presenter)(nil)

// NewPresenter creates a Presenter showing the loading view.
func NewPresenter(logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Presenter{
		logger:  logger.With("component", "web_presenter"),
		actions: make(chan action, 1),
	}
	p.publish(View{Kind: ViewLoading, Message: ui.LoadingText})
	return p
}

// Snapshot returns the current view.
func (p *Presenter) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// RenderLoading implements drill.Presenter.
func (p *Presenter) RenderLoading(context.Context) error {
	p.publish(View{Kind: ViewLoading, Message: ui.LoadingText})
	return nil
}

// RenderPrompt implements drill.Presenter.
func (p *Presenter) RenderPrompt(_ context.Context, card drill.PromptCard) error {
	transcription, pos := ui.PromptDetails(card)
	p.publish(View{
		Kind:          ViewPrompt,
		Repeat:        card.RepeatMode,
		Card:          card.Kind(),
		Direction:     card.Direction,
		Word:          card.Question(),
		Transcription: transcription,
		Pos:           pos,
	})
	return nil
}

// CollectAnswer implements drill.Presenter.
func (p *Presenter) CollectAnswer(ctx context.Context) (string, error) {
	p.expect(ActionAnswer, "")
	a, err := p.await(ctx)
	if err != nil {
		return "", err
	}
	return a.value, nil
}

// ConfirmSkip implements drill.Presenter.
func (p *Presenter) ConfirmSkip(ctx context.Context) (bool, error) {
	p.expect(ActionConfirm, ui.SkipQuestion)
	a, err := p.await(ctx)
	if err != nil {
		return false, err
	}
	return a.skip, nil
}

// RenderSubmitting implements drill.Presenter.
func (p *Presenter) RenderSubmitting(_ context.Context, card drill.CommitCard) error {
	p.publish(View{
		Kind:    ViewSubmitting,
		Repeat:  card.RepeatMode,
		Card:    card.Kind(),
		Message: ui.LoadingText,
	})
	return nil
}

// RenderCommitResult implements drill.Presenter.
func (p *Presenter) RenderCommitResult(ctx context.Context, card drill.CommitCard, res domain.CommitResult) error {
	if res.Mistakes == nil {
		res.Mistakes = []domain.Mistake{}
	}
	p.publish(View{
		Kind:    ViewResult,
		Expects: ActionAck,
		Repeat:  card.RepeatMode,
		Card:    card.Kind(),
		Message: ui.ResultTitle,
		Result:  &res,
	})
	_, err := p.await(ctx)
	return err
}

// RenderTerminal implements drill.Presenter.
func (p *Presenter) RenderTerminal(ctx context.Context, card drill.Card) error {
	repeat := false
	switch c := card.(type) {
	case drill.SessionEndCard:
		repeat = c.RepeatMode
	case drill.EmptyCard:
	default:
		return &drill.UnknownCardError{Card: card}
	}
	p.publish(View{
		Kind:    ViewTerminal,
		Expects: ActionAck,
		Repeat:  repeat,
		Card:    card.Kind(),
		Message: ui.TerminalMessage(card),
	})
	_, err := p.await(ctx)
	return err
}

// RenderError implements drill.Presenter.
func (p *Presenter) RenderError(ctx context.Context, err error) error {
	p.publish(View{
		Kind:    ViewError,
		Expects: ActionRetry,
		Message: ui.ErrorMessage(err),
	})
	_, werr := p.await(ctx)
	return werr
}

// RenderAuthRequired implements drill.Presenter.
func (p *Presenter) RenderAuthRequired(_ context.Context, err error) error {
	p.logger.Warn("showing re-authentication notice", "error", redact.Error(err))
	p.publish(View{Kind: ViewAuthRequired, Message: ui.AuthRequiredMsg})
	return nil
}

// submit hands a user action to the waiting presenter call. It fails with
// ErrUnexpectedAction unless the current view expects kind; once accepted,
// the view expects nothing until the next presenter call.
func (p *Presenter) submit(a action) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view.Expects != a.kind {
		return ErrUnexpectedAction
	}
	p.view.Expects = ""
	p.view.Seq++
	// At most one action is accepted per expectation, so the buffered
	// channel never blocks here.
	p.actions <- a
	return nil
}

func (p *Presenter) publish(v View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v.Seq = p.view.Seq + 1
	p.view = v
}

// expect keeps the current view and marks it as waiting for kind.
func (p *Presenter) expect(kind, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Seq++
	p.view.Expects = kind
	p.view.Message = message
}

func (p *Presenter) await(ctx context.Context) (action, error) {
	select {
	case <-ctx.Done():
		p.mu.Lock()
		p.view.Expects = ""
		select {
		case <-p.actions:
		default:
		}
		p.mu.Unlock()
		return action{}, ctx.Err()
	case a := <-p.actions:
		return a, nil
	}
}
