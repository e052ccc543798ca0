// Package terminal implements drill.Presenter on a line-oriented terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/drill"
	"github.com/phrazzld/scry-drill/internal/ui"
)

// ErrInputClosed is returned when the input stream ends while the presenter
// is waiting for the user.
var ErrInputClosed = errors.New("input closed")

type line struct {
	text string
	err  error
}

// Presenter renders cards as text on out and reads answers line by line
// from in.
type Presenter struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	once      sync.Once
	lines     chan line
	closeOnce sync.Once
	done      chan struct{}
}

var _ drill.Presenter = (*Presenter)(nil)

// New creates a Presenter. Reading from in starts with the first call that
// needs input.
func New(in io.Reader, out io.Writer, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{
		in:     in,
		out:    out,
		logger: logger.With("component", "terminal_presenter"),
		lines:  make(chan line),
		done:   make(chan struct{}),
	}
}

// Close stops the presenter. Pending and later reads return ErrInputClosed,
// and the reader goroutine exits after the next line it reads.
func (p *Presenter) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

// RenderLoading implements drill.Presenter.
func (p *Presenter) RenderLoading(context.Context) error {
	return p.printf("\n%s\n", ui.LoadingText)
}

// RenderPrompt implements drill.Presenter.
func (p *Presenter) RenderPrompt(_ context.Context, card drill.PromptCard) error {
	var b strings.Builder
	b.WriteString("\n")
	if card.RepeatMode {
		fmt.Fprintf(&b, "%s\n", ui.RepeatLabel)
	}
	fmt.Fprintf(&b, "%s\n", card.Question())
	transcription, pos := ui.PromptDetails(card)
	if transcription != "" {
		fmt.Fprintf(&b, "%s\n", transcription)
	}
	if pos != "" {
		fmt.Fprintf(&b, "%s\n", pos)
	}
	return p.printf("%s", b.String())
}

// CollectAnswer implements drill.Presenter.
func (p *Presenter) CollectAnswer(ctx context.Context) (string, error) {
	if err := p.printf("> "); err != nil {
		return "", err
	}
	return p.readLine(ctx)
}

// ConfirmSkip implements drill.Presenter. Only an explicit yes skips.
func (p *Presenter) ConfirmSkip(ctx context.Context) (bool, error) {
	if err := p.printf("%s [y/N] ", ui.SkipQuestion); err != nil {
		return false, err
	}
	reply, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// RenderSubmitting implements drill.Presenter.
func (p *Presenter) RenderSubmitting(_ context.Context, card drill.CommitCard) error {
	return p.printf("\n%s%s\n%s\n", repeatLine(card.RepeatMode), ui.ResultTitle, ui.LoadingText)
}

// RenderCommitResult implements drill.Presenter.
func (p *Presenter) RenderCommitResult(ctx context.Context, card drill.CommitCard, res domain.CommitResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%sCorrect: %d  Mistakes: %d\n", repeatLine(card.RepeatMode), res.Correct, len(res.Mistakes))
	if len(res.Mistakes) > 0 {
		b.WriteString("\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(ui.MistakeColumns, "\t"))
		for _, m := range res.Mistakes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Correct, m.Translate, m.Answer)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if err := p.printf("%s", b.String()); err != nil {
		return err
	}
	return p.pause(ctx, "Next")
}

// RenderTerminal implements drill.Presenter.
func (p *Presenter) RenderTerminal(ctx context.Context, card drill.Card) error {
	repeat := false
	action := "Continue"
	switch c := card.(type) {
	case drill.SessionEndCard:
		repeat = c.RepeatMode
	case drill.EmptyCard:
		action = "Try again"
	default:
		return &drill.UnknownCardError{Card: card}
	}
	if err := p.printf("\n%s%s\n", repeatLine(repeat), ui.TerminalMessage(card)); err != nil {
		return err
	}
	return p.pause(ctx, action)
}

// RenderError implements drill.Presenter.
func (p *Presenter) RenderError(ctx context.Context, err error) error {
	if perr := p.printf("\n%s\n", ui.ErrorMessage(err)); perr != nil {
		return perr
	}
	return p.pause(ctx, "Retry")
}

// RenderAuthRequired implements drill.Presenter.
func (p *Presenter) RenderAuthRequired(context.Context, error) error {
	return p.printf("\n%s\n", ui.AuthRequiredMsg)
}

func (p *Presenter) pause(ctx context.Context, action string) error {
	if err := p.printf("[Enter] %s ", action); err != nil {
		return err
	}
	_, err := p.readLine(ctx)
	return err
}

func (p *Presenter) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(p.out, format, args...)
	return err
}

// readLine waits for the next input line or for ctx to be done. The reader
// goroutine outlives a canceled call; the line it reads next is delivered
// to the following call.
func (p *Presenter) readLine(ctx context.Context) (string, error) {
	p.once.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", ErrInputClosed
	case l, ok := <-p.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if l.err != nil {
			return "", l.err
		}
		return l.text, nil
	}
}

func (p *Presenter) readLoop() {
	defer close(p.lines)
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		if !p.deliver(line{text: strings.TrimRight(scanner.Text(), "\r")}) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		p.logger.Error("failed to read input", "error", err)
		p.deliver(line{err: fmt.Errorf("read input: %w", err)})
	}
}

// deliver hands l to the next readLine. It reports false once the
// presenter is closed.
func (p *Presenter) deliver(l line) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.lines <- l:
		return true
	case <-p.done:
		return false
	}
}

func repeatLine(repeat bool) string {
	if repeat {
		return ui.RepeatLabel + "\n"
	}
	return ""
}
