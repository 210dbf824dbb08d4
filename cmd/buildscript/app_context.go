package main

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/buildscript/internal/engine"
	"github.com/alexisbeaulieu97/buildscript/internal/logger"
	"github.com/alexisbeaulieu97/buildscript/internal/telemetry"
)

// AppContext bundles what a command needs after the configuration phase.
type AppContext struct {
	Build  *engine.Build
	Logger *logger.Logger
	Styles styles

	shutdown func(context.Context) error
}

// Close flushes telemetry.
func (a *AppContext) Close(ctx context.Context) {
	if a.shutdown == nil {
		return
	}
	if err := a.shutdown(ctx); err != nil {
		a.Logger.Error(err, "flush traces")
	}
}

func newAppContext(cmd *cobra.Command, flags *rootFlags) (*AppContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level := flags.settings.LogLevel
	if flags.verbose {
		level = "debug"
	}

	errOut := cmd.ErrOrStderr()
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: flags.settings.HumanReadable(isTerminal(errOut)),
		Writer:        errOut,
	})
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Setup(ctx, flags.settings.OTELEndpoint)
	if err != nil {
		return nil, err
	}

	build, err := engine.Configure(ctx, engine.Options{
		ProjectDir:     flags.projectDir,
		DescriptorPath: flags.file,
		Logger:         log,
		HTTPClient:     &http.Client{Timeout: flags.settings.HTTPTimeout},
	})
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return &AppContext{
		Build:    build,
		Logger:   log,
		Styles:   newStyles(cmd.OutOrStdout()),
		shutdown: shutdown,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
