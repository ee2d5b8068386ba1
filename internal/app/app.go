package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/boolq/view"
)

// NewApp creates a tview application.
func NewApp() *tview.Application {
	return tview.NewApplication()
}

// SetupSignalHandler stops the application on SIGINT or SIGTERM so the
// terminal is restored. The returned func releases the handler.
func SetupSignalHandler(app *tview.Application) func() {
	quit := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-quit:
			slog.Info("received signal, shutting down", "signal", sig)
			app.Stop()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(quit)
		close(done)
	}
}

// Run runs the tview application with the search view as root.
// Returns an error if the application fails to run.
func Run(app *tview.Application, searchView *view.SearchView) error {
	searchView.SetFocusSetter(func(p tview.Primitive) { app.SetFocus(p) })
	app.SetRoot(searchView.GetPrimitive(), true).EnableMouse(false)
	app.SetFocus(searchView.Prompt())
	if err := app.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
