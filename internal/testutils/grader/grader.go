// Package grader provides an in-process stand-in for the grading service,
// used by tests that exercise the word client and the drill session over
// real HTTP.
package grader

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-drill/internal/api/shared"
	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/testutils"
)

// Failure describes one injected failure. A non-zero Status answers with that
// HTTP status; otherwise a non-empty Code answers ok=false with that code.
type Failure struct {
	Status int
	Code   string
}

// Grader serves /api/words/get and /api/words/remember from memory.
// Batches are served in order; the last one repeats once the rest are used.
type Grader struct {
	mu          sync.Mutex
	batches     []domain.Batch
	words       map[int]domain.Word
	cookie      string
	failures    map[string][]Failure
	fetches     int
	submissions [][]domain.Answer
}

// New creates a grader serving the given batches.
func New(batches ...domain.Batch) *Grader {
	g := &Grader{
		words:    make(map[int]domain.Word),
		failures: make(map[string][]Failure),
	}
	for _, b := range batches {
		g.AddBatch(b)
	}
	return g
}

// AddBatch queues another batch and makes its words gradable.
func (g *Grader) AddBatch(b domain.Batch) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.batches = append(g.batches, b)
	for _, w := range append(append([]domain.Word{}, b.Learn...), b.Repeat...) {
		g.words[w.ID] = w
	}
}

// RequireCookie makes every request without exactly this Cookie header fail
// with an EAUTH code.
func (g *Grader) RequireCookie(cookie string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cookie = cookie
}

// FailNext queues a failure for the next request to path.
func (g *Grader) FailNext(path string, f Failure) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[path] = append(g.failures[path], f)
}

// Fetches returns how many batch requests were answered successfully.
func (g *Grader) Fetches() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetches
}

// Submissions returns a copy of every successfully graded answer set.
func (g *Grader) Submissions() [][]domain.Answer {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([][]domain.Answer, len(g.submissions))
	for i, s := range g.submissions {
		out[i] = append([]domain.Answer(nil), s...)
	}
	return out
}

// Handler returns the chi router serving both endpoints.
func (g *Grader) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Post("/api/words/get", g.handleGet)
	r.Post("/api/words/remember", g.handleRemember)
	return r
}

// Start serves the grader on a test server closed at the end of the test.
func (g *Grader) Start(t *testing.T) *httptest.Server {
	t.Helper()
	return testutils.CreateTestServer(t, g.Handler())
}

type envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *errorBody  `json:"error,omitempty"`
}

type errorBody struct {
	Code string `json:"code"`
}

// intercept applies auth and injected failures. It reports whether the
// request was answered.
func (g *Grader) intercept(w http.ResponseWriter, r *http.Request) bool {
	g.mu.Lock()
	cookie := g.cookie
	var failure *Failure
	if queued := g.failures[r.URL.Path]; len(queued) > 0 {
		failure = &queued[0]
		g.failures[r.URL.Path] = queued[1:]
	}
	g.mu.Unlock()

	if cookie != "" && r.Header.Get("Cookie") != cookie {
		shared.RespondWithJSON(w, r, http.StatusOK, envelope{Error: &errorBody{Code: "EAUTH_NOT_AUTHENTICATED"}})
		return true
	}
	if failure == nil {
		return false
	}
	if failure.Status != 0 {
		http.Error(w, http.StatusText(failure.Status), failure.Status)
		return true
	}
	shared.RespondWithJSON(w, r, http.StatusOK, envelope{Error: &errorBody{Code: failure.Code}})
	return true
}

func (g *Grader) handleGet(w http.ResponseWriter, r *http.Request) {
	if g.intercept(w, r) {
		return
	}

	g.mu.Lock()
	batch := domain.Batch{Learn: []domain.Word{}, Repeat: []domain.Word{}}
	if len(g.batches) > 0 {
		batch = g.batches[0]
		if len(g.batches) > 1 {
			g.batches = g.batches[1:]
		}
	}
	g.fetches++
	g.mu.Unlock()

	shared.RespondWithJSON(w, r, http.StatusOK, envelope{OK: true, Data: batch})
}

func (g *Grader) handleRemember(w http.ResponseWriter, r *http.Request) {
	if g.intercept(w, r) {
		return
	}

	var req struct {
		Answers []domain.Answer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithJSON(w, r, http.StatusOK, envelope{Error: &errorBody{Code: "EVALIDATION"}})
		return
	}

	g.mu.Lock()
	result := domain.CommitResult{Mistakes: []domain.Mistake{}}
	for _, a := range req.Answers {
		word, ok := g.words[a.ID]
		if !ok {
			continue
		}
		prompt, correct := word.EnWord, word.RuWord
		if a.Direction() == domain.RuEn {
			prompt, correct = word.RuWord, word.EnWord
		}
		if strings.EqualFold(strings.TrimSpace(a.Value()), correct) {
			result.Correct++
			continue
		}
		result.Mistakes = append(result.Mistakes, domain.Mistake{
			Correct:   correct,
			Translate: prompt,
			Answer:    a.Value(),
		})
	}
	g.submissions = append(g.submissions, req.Answers)
	g.mu.Unlock()

	shared.RespondWithJSON(w, r, http.StatusOK, envelope{OK: true, Data: result})
}
