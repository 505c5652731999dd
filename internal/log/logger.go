// Package log is the structured logging layer for browsed. It wraps logrus
// with a small field-oriented API so every recovered failure can be emitted as
// a single structured event.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"browsed/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single key/value pair attached to a log event.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger emits structured events through logrus.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// Option configures a Logger.
type Option func(*options)

type options struct {
	out  io.Writer
	json bool
	file string
}

// WithOutput sets the writer events are written to. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithJSON switches to one JSON object per event.
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithFile appends events to the file at path instead of the output writer.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// NewLogger creates a logger. A file that cannot be opened falls back to the
// configured output, with a warning written there.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	base.SetOutput(o.out)

	var (
		file    *os.File
		openErr error
	)
	if o.file != "" {
		file, openErr = os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr == nil {
			base.SetOutput(file)
		}
	}

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l := &Logger{entry: logrus.NewEntry(base)}
	if openErr != nil {
		l.WithError(errors.NewIoError("cannot open log file", o.file, openErr)).Warn("logging to fallback output")
		return l
	}
	l.file = file
	return l
}

// Configure replaces the package-level logger and closes the log file of the
// one it replaces.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	_ = old.Close()
}

// Default returns the package-level logger.
func Default() *Logger {
	return logger
}

// SetDebug turns debug events on or off for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// With returns a logger that adds fields to every event.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError returns a logger carrying err and the structured details of its
// classified type.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// WithContext attaches ctx to subsequent events.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

// Debug logs a message with arguments
func (l *Logger) Debug(args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debug(args...)
	}
}

// Debugf logs a formatted message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

func (l *Logger) Info(args ...interface{}) {
	l.entry.Info(args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// ErrorWithStack logs err at error level with its full wrap chain.
func (l *Logger) ErrorWithStack(err error, msg string) {
	chain := []string{}
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, fmt.Sprintf("%T", e))
	}
	l.WithError(err).With(F("chain", chain)).Error(msg)
}

// errorFields flattens an error into log fields.
func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var ioErr *errors.IoError
	if errors.As(err, &ioErr) {
		fields = append(fields, F("path", ioErr.Path()))
	}
	var copyErr *errors.CopyError
	if errors.As(err, &copyErr) {
		fields = append(fields, F("source", copyErr.Source()), F("destination", copyErr.Destination()))
	}
	var patternErr *errors.PatternError
	if errors.As(err, &patternErr) {
		fields = append(fields, F("pattern", patternErr.Pattern()))
	}
	var indexErr *errors.IndexError
	if errors.As(err, &indexErr) {
		fields = append(fields, F("index", indexErr.Index()), F("length", indexErr.Length()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var lockErr *errors.LockError
	if errors.As(err, &lockErr) {
		fields = append(fields, F("resource", lockErr.Resource()))
	}
	return fields
}

// LogWithFields returns the package-level logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package-level logger with err attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err with msg on the package-level logger.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	logger.Debugf(msg, args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	logger.Errorf(msg, args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	logger.Warnf(msg, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
