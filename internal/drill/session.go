package drill

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/events"
	"github.com/phrazzld/scry-drill/internal/redact"
	"github.com/phrazzld/scry-drill/internal/wordclient"
)

// State is the lifecycle state of a Session.
type State int

// Session states.
const (
	// StateIdle is the state before the first Start.
	StateIdle State = iota
	// StateLoading means a batch fetch is in flight.
	StateLoading
	// StatePresenting means the front card is waiting for the user.
	StatePresenting
	// StateSubmitting means an answer submission is in flight.
	StateSubmitting
	// StateFinished means the front card is an EmptyCard.
	StateFinished
	// StateFailed means the last fetch or submission failed and can be retried.
	StateFailed
	// StateAbandoned means the backend no longer accepts the user's
	// credentials. The session cannot recover without re-authentication.
	StateAbandoned
)

var stateNames = map[State]string{
	StateIdle:       "idle",
	StateLoading:    "loading",
	StatePresenting: "presenting",
	StateSubmitting: "submitting",
	StateFinished:   "finished",
	StateFailed:     "failed",
	StateAbandoned:  "abandoned",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Options tune a Session. The zero value drills with LearnRepeats and
// RepeatLearnRepeats and discards events.
type Options struct {
	LearnRepeats  int
	RepeatRepeats int
	Emitter       events.EventEmitter
	Logger        *slog.Logger
}

// Session is the drill state machine. It owns the card queue and the answer
// buffer for one user.
//
// All methods are safe for concurrent use. The internal lock is released
// while a network call is in flight; operations that would start a second
// call return ErrBusy instead.
type Session struct {
	id            uuid.UUID
	client        wordclient.Client
	emitter       events.EventEmitter
	logger        *slog.Logger
	learnRepeats  int
	repeatRepeats int

	mu        sync.Mutex
	state     State
	queue     []Card
	buffer    []domain.Answer
	committed *domain.CommitResult
	err       error
	inFlight  bool
	closed    bool
}

// NewSession creates an idle session backed by client.
func NewSession(client wordclient.Client, opts Options) *Session {
	if opts.LearnRepeats == 0 {
		opts.LearnRepeats = LearnRepeats
	}
	if opts.RepeatRepeats == 0 {
		opts.RepeatRepeats = RepeatLearnRepeats
	}
	if opts.Emitter == nil {
		opts.Emitter = events.NopEmitter{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	id := uuid.New()
	return &Session{
		id:            id,
		client:        client,
		emitter:       opts.Emitter,
		logger:        opts.Logger.With("component", "drill_session", "session_id", id.String()),
		learnRepeats:  opts.LearnRepeats,
		repeatRepeats: opts.RepeatRepeats,
	}
}

// ID returns the session identifier used to correlate logs and events.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed fetch or submission, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Buffer returns a copy of the answers buffered since the last commit.
func (s *Session) Buffer() []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Answer, len(s.buffer))
	copy(out, s.buffer)
	return out
}

// Remaining returns the number of cards left in the queue, including the
// front card.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Current returns the front card. ok is false when the queue is empty,
// which is the case before the first successful Start.
func (s *Session) Current() (card Card, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	return s.queue[0], true
}

// Start fetches a new batch and replaces the queue with the cards built
// from it. The answer buffer is cleared.
//
// On failure the error is retained (see Err) and the session moves to
// StateFailed; calling Start again retries. An authentication failure moves
// the session to StateAbandoned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inFlight = true
	s.state = StateLoading
	s.queue = nil
	s.buffer = nil
	s.committed = nil
	s.err = nil
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "fetching word batch")
	batch, err := s.client.FetchBatch(ctx)

	s.mu.Lock()
	s.inFlight = false
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		s.err = err
		s.state = failureState(err)
		state := s.state
		s.mu.Unlock()

		s.logger.WarnContext(ctx, "failed to fetch word batch",
			"error", redact.Error(err),
			"state", state.String())
		s.emit(ctx, events.TypeBatchFailed, map[string]string{"error": redact.Error(err)})
		if state == StateAbandoned {
			s.emit(ctx, events.TypeSessionAbandoned, nil)
		}
		return err
	}

	s.queue = BuildBatch(batch, s.learnRepeats, s.repeatRepeats)
	s.state = stateFor(s.queue)
	cards := len(s.queue)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "word batch loaded",
		"learn", len(batch.Learn),
		"repeat", len(batch.Repeat),
		"cards", cards)
	s.emit(ctx, events.TypeBatchLoaded, map[string]int{
		"learn":  len(batch.Learn),
		"repeat": len(batch.Repeat),
		"cards":  cards,
	})
	return nil
}

// Advance discards the front card. It is a no-op on an empty queue.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
}

// Answer buffers value as the translation for the front PromptCard and
// advances. An empty value records a skipped word; confirming the skip with
// the user is the caller's job. ctx is passed to the answer_buffered event.
func (s *Session) Answer(ctx context.Context, value string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	prompt, ok := s.front().(PromptCard)
	if !ok {
		s.mu.Unlock()
		return ErrNotPrompt
	}
	answer, err := domain.NewAnswer(prompt.Word.ID, prompt.Direction, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.buffer = append(s.buffer, answer)
	buffered := len(s.buffer)
	s.advanceLocked()
	s.mu.Unlock()

	s.emit(ctx, events.TypeAnswerBuffered, map[string]interface{}{
		"word_id":   prompt.Word.ID,
		"direction": prompt.Direction,
		"skipped":   value == "",
		"buffered":  buffered,
	})
	return nil
}

// Commit submits the buffered answers for grading.
//
// The front card must be a CommitCard. On success the buffer is cleared and
// the graded result is returned; the CommitCard stays in front until
// Acknowledge. Calling Commit again before Acknowledge returns the same
// result without resubmitting.
//
// On failure the buffer is left untouched, the error is retained and the
// CommitCard stays in front, so calling Commit again resubmits exactly the
// same answers.
func (s *Session) Commit(ctx context.Context) (domain.CommitResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.CommitResult{}, ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return domain.CommitResult{}, ErrBusy
	}
	if _, ok := s.front().(CommitCard); !ok {
		s.mu.Unlock()
		return domain.CommitResult{}, ErrNotCommit
	}
	if s.committed != nil {
		res := *s.committed
		s.mu.Unlock()
		return res, nil
	}
	s.inFlight = true
	s.state = StateSubmitting
	s.err = nil
	answers := make([]domain.Answer, len(s.buffer))
	copy(answers, s.buffer)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "submitting answers", "answers", len(answers))
	res, err := s.client.SubmitAnswers(ctx, answers)

	s.mu.Lock()
	s.inFlight = false
	if s.closed {
		s.mu.Unlock()
		return domain.CommitResult{}, ErrClosed
	}
	if err != nil {
		s.err = err
		s.state = failureState(err)
		state := s.state
		s.mu.Unlock()

		s.logger.WarnContext(ctx, "failed to submit answers",
			"error", redact.Error(err),
			"answers", len(answers),
			"state", state.String())
		s.emit(ctx, events.TypeCommitFailed, map[string]interface{}{
			"error":   redact.Error(err),
			"answers": len(answers),
		})
		if state == StateAbandoned {
			s.emit(ctx, events.TypeSessionAbandoned, nil)
		}
		return domain.CommitResult{}, err
	}

	s.buffer = nil
	s.committed = &res
	s.state = StatePresenting
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "answers committed",
		"answers", len(answers),
		"correct", res.Correct,
		"mistakes", len(res.Mistakes))
	s.emit(ctx, events.TypeAnswersCommitted, map[string]int{
		"answers":  len(answers),
		"correct":  res.Correct,
		"mistakes": len(res.Mistakes),
	})
	return res, nil
}

// Acknowledge advances past a CommitCard whose submission succeeded.
func (s *Session) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.front().(CommitCard); !ok || s.committed == nil {
		return ErrNotAcknowledgeable
	}
	s.advanceLocked()
	return nil
}

// Continue resolves the front SessionEndCard. The end of a review pass
// advances into the learning pass that follows it; the end of a learning
// pass discards the queue and fetches a new batch.
func (s *Session) Continue(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	end, ok := s.front().(SessionEndCard)
	if !ok {
		s.mu.Unlock()
		return ErrNotSessionEnd
	}
	if end.RepeatMode {
		s.advanceLocked()
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "restarting session", "words", end.WordCount)
	s.emit(ctx, events.TypeSessionRestarted, map[string]int{"words": end.WordCount})
	return s.Start(ctx)
}

// Close tears the session down. Results of calls still in flight are
// discarded and every further operation returns ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.queue = nil
	s.buffer = nil
	s.committed = nil
}

func (s *Session) front() Card {
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[0]
}

func (s *Session) advanceLocked() {
	if len(s.queue) == 0 {
		return
	}
	s.queue = s.queue[1:]
	s.committed = nil
	s.state = stateFor(s.queue)
}

func (s *Session) emit(ctx context.Context, eventType string, payload interface{}) {
	event, err := events.NewSessionEvent(eventType, s.id, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build session event",
			"event_type", eventType,
			"error", err)
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit session event",
			"event_type", eventType,
			"error", redact.Error(err))
	}
}

func stateFor(queue []Card) State {
	if len(queue) == 0 {
		return StateFinished
	}
	if _, ok := queue[0].(EmptyCard); ok {
		return StateFinished
	}
	return StatePresenting
}

func failureState(err error) State {
	if wordclient.IsAuth(err) {
		return StateAbandoned
	}
	return StateFailed
}
