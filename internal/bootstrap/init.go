package bootstrap

import (
	"io"
	"log/slog"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"

	"github.com/boolean-maybe/boolq/config"
	"github.com/boolean-maybe/boolq/internal/app"
	"github.com/boolean-maybe/boolq/model"
	"github.com/boolean-maybe/boolq/store"
	"github.com/boolean-maybe/boolq/view"
)

// BootstrapResult contains all initialized application components.
type BootstrapResult struct {
	Cfg         *config.Config
	LogLevel    slog.Level
	LogCloser   io.Closer
	Store       *store.InMemoryStore
	DataSource  string
	SearchState *model.SearchState
	App         *tview.Application
	SearchView  *view.SearchView
	StopSignals func()
}

// Close releases everything Bootstrap acquired.
func (r *BootstrapResult) Close() {
	if r.SearchView != nil {
		r.SearchView.Close()
	}
	if r.StopSignals != nil {
		r.StopSignals()
	}
	if r.LogCloser != nil {
		_ = r.LogCloser.Close()
	}
}

// Bootstrap orchestrates the initialization sequence. With interactive set
// the terminal UI is built and logs go to the log file; otherwise only the
// configuration, store and search state are prepared.
func Bootstrap(flagSet *pflag.FlagSet, interactive bool) (*BootstrapResult, error) {
	// Phase 1: Configuration and logging
	cfg, err := LoadConfig(flagSet)
	if err != nil {
		return nil, err
	}
	logLevel, logCloser := config.InitLogging(cfg, interactive)
	result := &BootstrapResult{Cfg: cfg, LogLevel: logLevel, LogCloser: logCloser}

	// Phase 2: Store initialization
	recordStore, dataSource, err := InitStore(cfg)
	if err != nil {
		result.Close()
		return nil, err
	}
	result.Store = recordStore
	result.DataSource = dataSource
	slog.Debug("records loaded", "source", dataSource, "count", len(recordStore.All()))

	// Phase 3: Model initialization
	result.SearchState = model.NewSearchState(recordStore, cfg.Search.Fields, cfg.Search.MaxDepth)

	if !interactive {
		return result, nil
	}

	// Phase 4: Application and view
	result.App = app.NewApp()
	result.StopSignals = app.SetupSignalHandler(result.App)
	result.SearchView = view.NewSearchView(recordStore, result.SearchState, dataSource)

	return result, nil
}
