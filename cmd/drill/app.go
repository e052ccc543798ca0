package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/scry-drill/internal/config"
	"github.com/phrazzld/scry-drill/internal/drill"
	"github.com/phrazzld/scry-drill/internal/events"
	"github.com/phrazzld/scry-drill/internal/redact"
	"github.com/phrazzld/scry-drill/internal/ui/terminal"
	"github.com/phrazzld/scry-drill/internal/ui/web"
	"github.com/phrazzld/scry-drill/internal/wordclient"
)

// application holds the wired components of one drill run.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	session *drill.Session
	runner  *drill.Runner
	server  *web.Server         // nil in terminal mode
	console *terminal.Presenter // nil in web mode
}

func newApplication(cfg *config.Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) (*application, error) {
	client, err := wordclient.New(cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word client: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))

	session := drill.NewSession(client, drill.Options{
		LearnRepeats:  cfg.Drill.LearnRepeats,
		RepeatRepeats: cfg.Drill.RepeatRepeats,
		Emitter:       emitter,
		Logger:        logger,
	})

	app := &application{
		config:  cfg,
		logger:  logger,
		session: session,
	}

	var presenter drill.Presenter
	switch cfg.UI.Mode {
	case "web":
		p := web.NewPresenter(logger)
		app.server = web.NewServer(p, cfg.UI, logger)
		presenter = p
	default:
		app.console = terminal.New(stdin, stdout, logger)
		presenter = app.console
	}
	app.runner = drill.NewRunner(session, presenter, logger)

	logger.Info("drill configured",
		"base_url", redact.String(cfg.Backend.BaseURL),
		"cookie", redact.Cookie(cfg.Backend.Cookie),
		"ui", cfg.UI.Mode,
		"learn_repeats", cfg.Drill.LearnRepeats,
		"repeat_repeats", cfg.Drill.RepeatRepeats,
		"session_id", session.ID().String())

	return app, nil
}

// run drives the session until ctx is done or the session ends. In web
// mode the server keeps serving after an authentication failure so the
// page can show the notice; it stops with ctx.
func (app *application) run(ctx context.Context) error {
	defer app.session.Close()

	if app.server == nil {
		defer app.console.Close()
		return app.runner.Run(ctx)
	}

	return superviseWeb(ctx, app.server.ListenAndServe, app.runner.Run, app.logger)
}

// superviseWeb runs serve and drive side by side and returns once both have
// stopped. A failing server cancels drive; a finished drive stops the server,
// except after an authentication failure, when serving continues until ctx
// is done.
func superviseWeb(ctx context.Context, serve, drive func(context.Context) error, logger *slog.Logger) error {
	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()
	serverErr := make(chan error, 1)
	go func() { serverErr <- serve(serverCtx) }()

	runnerCtx, stopRunner := context.WithCancel(ctx)
	defer stopRunner()
	runErr := make(chan error, 1)
	go func() { runErr <- drive(runnerCtx) }()

	select {
	case err := <-serverErr:
		if err == nil {
			err = errors.New("web presenter stopped unexpectedly")
		}
		stopRunner()
		<-runErr
		return err
	case err := <-runErr:
		if !wordclient.IsAuth(err) {
			stopServer()
			<-serverErr
			return err
		}
		logger.Warn("re-authentication required; press Ctrl-C to exit",
			"error", redact.Error(err))
		<-ctx.Done()
		stopServer()
		<-serverErr
		return err
	}
}
