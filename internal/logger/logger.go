package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field keys shared by every build phase so log lines can be filtered per
// project, task, plugin, or repository.
const (
	FieldProject    = "project"
	FieldTask       = "task"
	FieldPlugin     = "plugin"
	FieldVersion    = "version"
	FieldRepository = "repository"
)

// Options configures the build log. Writer defaults to stderr so command
// output on stdout stays clean for piping.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger is the structured log stream of one buildscript invocation.
// A nil *Logger discards everything.
type Logger struct {
	base zerolog.Logger
}

// New builds the invocation logger. HumanReadable selects the console format
// used on terminals; otherwise entries are JSON lines.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.Kitchen
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// Nop is used by tests and library callers that supply no logger.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// ForProject scopes entries to a project directory.
func (l *Logger) ForProject(dir string) *Logger {
	return l.With(FieldProject, dir)
}

// ForTask scopes entries to a registered task.
func (l *Logger) ForTask(name string) *Logger {
	return l.With(FieldTask, name)
}

// ForPlugin scopes entries to a plugin reference being resolved.
func (l *Logger) ForPlugin(id, version string) *Logger {
	return l.WithFields(map[string]any{FieldPlugin: id, FieldVersion: version})
}

// ForRepository scopes entries to a repository source.
func (l *Logger) ForRepository(name string) *Logger {
	return l.With(FieldRepository, name)
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// With returns a derived logger carrying a single key.
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	derived := Logger{base: l.base.With().Interface(key, value).Logger()}
	return &derived
}

func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn is used for recoverable descriptor problems such as duplicate tasks.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error records a failed phase with its cause attached under "error".
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
