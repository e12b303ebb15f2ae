package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fakefy/internal/app"
	"github.com/desertthunder/fakefy/internal/repositories"
	"github.com/desertthunder/fakefy/internal/services"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/desertthunder/fakefy/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The application context is opened on first use so commands that never touch storage (api, setup) do not
// create database files.
type Runner struct {
	config     *shared.Config
	configPath string
	app        *app.App
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	dbs        []*sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	App        *app.App
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Metadata.Timeout()}
	}
	if opts.API == nil {
		root := opts.Config.Metadata.BaseURL
		if root == "" {
			root = services.DefaultBaseURL
		}
		key := opts.Config.Metadata.APIKey
		if key == "" {
			key = services.DefaultAPIKey
		}
		opts.API = services.NewAPIService(root+"/"+key, opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		app:        opts.App,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, logoutCommand, whoamiCommand, playlistsCommand, songsCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and by an application context opened afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// application returns the application context, opening the durable and transient stores on first use.
func (r *Runner) application() (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}

	storage := r.config.Storage
	durable, err := shared.OpenStore(storage.Path, storage.MaxOpenConns, storage.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", storage.Path, err)
	}
	r.dbs = append(r.dbs, durable)

	transient, err := shared.OpenStore(storage.TransientPath(), 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	r.dbs = append(r.dbs, transient)

	meta := r.config.Metadata
	metadata := services.NewAudioDBService(services.AudioDBOptions{
		BaseURL:   meta.BaseURL,
		APIKey:    meta.APIKey,
		Client:    r.httpClient,
		RateLimit: meta.RateLimit,
		Logger:    shared.WithLogger(r.logger, "component", "audiodb"),
	})

	r.app = app.New(app.Deps{
		Durable:   repositories.NewSQLiteStorage(durable),
		Transient: repositories.NewSQLiteStorage(transient),
		Metadata:  metadata,
		Catalog: tasks.CatalogOptions{
			Artists:      meta.PopularArtists,
			Workers:      meta.Workers,
			PopularLimit: meta.PopularLimit,
		},
		Logger: r.logger,
		OnPersistenceError: func(err error) {
			r.logger.Warn("changes may not survive a restart", "error", err)
		},
	})
	return r.app, nil
}

// Close releases the stores opened by [Runner.application].
func (r *Runner) Close() error {
	var errs []error
	for _, db := range r.dbs {
		errs = append(errs, db.Close())
	}
	r.dbs = nil
	return errors.Join(errs...)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
