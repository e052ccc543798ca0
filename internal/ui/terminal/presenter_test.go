package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/drill"
	"github.com/phrazzld/scry-drill/internal/mocks"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
	"github.com/phrazzld/scry-drill/internal/wordclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dog = domain.Word{ID: 2, EnWord: "dog", RuWord: "собака", EnTranscription: "dɒɡ", EnPos: "noun"}

func newPresenter(t *testing.T, input string) (*Presenter, *bytes.Buffer) {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out, log), out
}

func TestRenderPrompt(t *testing.T) {
	tests := []struct {
		name string
		card drill.PromptCard
		want string
	}{
		{
			name: "en_ru with details",
			card: drill.PromptCard{Direction: domain.EnRu, Word: dog},
			want: "\ndog\n[dɒɡ]\nnoun\n",
		},
		{
			name: "ru_en",
			card: drill.PromptCard{Direction: domain.RuEn, Word: dog},
			want: "\nсобака\n",
		},
		{
			name: "repeat label",
			card: drill.PromptCard{Direction: domain.RuEn, Word: dog, RepeatMode: true},
			want: "\nRepeat\nсобака\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPresenter(t, "")
			require.NoError(t, p.RenderPrompt(context.Background(), tt.card))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestCollectAnswer(t *testing.T) {
	p, out := newPresenter(t, "собака\r\n\n")

	got, err := p.CollectAnswer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "собака", got)

	got, err = p.CollectAnswer(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.CollectAnswer(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, "> > > ", out.String())
}

func TestConfirmSkip(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, out := newPresenter(t, tt.input)
			got, err := p.ConfirmSkip(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Skip this word? [y/N] ", out.String())
		})
	}
}

func TestRenderCommitResult(t *testing.T) {
	p, out := newPresenter(t, "\n")
	res := domain.CommitResult{
		Correct: 1,
		Mistakes: []domain.Mistake{
			{Correct: "собака", Translate: "dog", Answer: "кошка"},
			{Correct: "cat", Translate: "кот", Answer: ""},
		},
	}

	require.NoError(t, p.RenderCommitResult(context.Background(), drill.CommitCard{RepeatMode: true}, res))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "Repeat", lines[0])
	assert.Equal(t, "Correct: 1  Mistakes: 2", lines[1])
	assert.Regexp(t, `^Correct\s+Translate\s+Yours$`, lines[3])
	assert.Regexp(t, `^собака\s+dog\s+кошка$`, lines[4])
	assert.Regexp(t, `^cat\s+кот\s*$`, lines[5])
	assert.Equal(t, "[Enter] Next ", lines[6])
}

func TestRenderCommitResultWithoutMistakes(t *testing.T) {
	p, out := newPresenter(t, "\n")
	require.NoError(t, p.RenderCommitResult(context.Background(), drill.CommitCard{}, domain.CommitResult{Correct: 3}))
	assert.Equal(t, "Correct: 3  Mistakes: 0\n[Enter] Next ", out.String())
	assert.NotContains(t, out.String(), "Yours")
}

func TestRenderTerminal(t *testing.T) {
	tests := []struct {
		name string
		card drill.Card
		want string
	}{
		{
			name: "learn pass",
			card: drill.SessionEndCard{WordCount: 2},
			want: "\nCongratulations! You learned 2 words. Press Continue to learn next words\n[Enter] Continue ",
		},
		{
			name: "repeat pass",
			card: drill.SessionEndCard{RepeatMode: true},
			want: "\nRepeat\nContinue learning\n[Enter] Continue ",
		},
		{
			name: "empty",
			card: drill.EmptyCard{},
			want: "\nNothing to learn :(\n[Enter] Try again ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPresenter(t, "\n")
			require.NoError(t, p.RenderTerminal(context.Background(), tt.card))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRenderTerminalRejectsOtherCards(t *testing.T) {
	p, _ := newPresenter(t, "\n")
	err := p.RenderTerminal(context.Background(), drill.CommitCard{})
	var unknown *drill.UnknownCardError
	assert.True(t, errors.As(err, &unknown))
}

func TestRenderErrorWaitsForRetry(t *testing.T) {
	p, out := newPresenter(t, "\n")
	err := &wordclient.APIError{Op: "fetch batch", Err: wordclient.ErrNetwork}

	require.NoError(t, p.RenderError(context.Background(), err))
	assert.Contains(t, out.String(), "Something went wrong: fetch batch: network error")
	assert.True(t, strings.HasSuffix(out.String(), "[Enter] Retry "))
}

func TestReadLineHonorsContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	log, _ := logger.NewTestLogger(t)
	p := New(pr, io.Discard, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.CollectAnswer(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCloseStopsReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	log, _ := logger.NewTestLogger(t)
	p := New(pr, io.Discard, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.CollectAnswer(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = pw.Write([]byte("late\n"))
	require.NoError(t, err)

	select {
	case l, ok := <-p.lines:
		assert.False(t, ok, "reader delivered %q after Close", l.text)
	case <-time.After(5 * time.Second):
		t.Fatal("reader goroutine did not exit after Close")
	}

	_, err = p.CollectAnswer(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestPresenterDrivesSession(t *testing.T) {
	cat := domain.Word{ID: 1, EnWord: "cat", RuWord: "кот"}
	client := mocks.NewMockWordClient(
		mocks.WithBatch(domain.Batch{Learn: []domain.Word{cat}}),
		mocks.WithResult(domain.CommitResult{Correct: 1, Mistakes: []domain.Mistake{}}),
	)
	log, _ := logger.NewTestLogger(t)
	session := drill.NewSession(client, drill.Options{LearnRepeats: 1, Logger: log})

	// declined skip, real answer, ack, confirmed skip, ack, continue
	input := strings.Join([]string{"", "n", "кот", "", "", "y", "", ""}, "\n") + "\n"
	p, out := newPresenter(t, input)

	err := drill.NewRunner(session, p, log).Run(context.Background())
	require.ErrorIs(t, err, ErrInputClosed)

	calls := client.SubmitCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "кот", calls[0][0].Value())
	assert.Equal(t, domain.RuEn, calls[1][0].Direction())
	assert.Empty(t, calls[1][0].Value())
	assert.Equal(t, 2, client.FetchCalls())
	assert.Contains(t, out.String(), "Congratulations! You learned 1 word.")
}
