package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ConsoleOutput writes log entries to the console.
type ConsoleOutput struct {
	mu          sync.Mutex
	writer      io.Writer
	errorWriter io.Writer
}

// ConsoleOutputOption configures a ConsoleOutput.
type ConsoleOutputOption func(*ConsoleOutput)

// WithWriter sets a custom writer, replacing stderr.
func WithWriter(w io.Writer) ConsoleOutputOption {
	return func(o *ConsoleOutput) {
		o.writer = w
		o.errorWriter = w
	}
}

// NewConsoleOutput creates a ConsoleOutput. By default everything goes to
// stderr so rendered templates on stdout stay clean for piping.
func NewConsoleOutput(options ...ConsoleOutputOption) *ConsoleOutput {
	o := &ConsoleOutput{
		writer:      os.Stderr,
		errorWriter: os.Stderr,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// Write writes the log entry to the console.
func (o *ConsoleOutput) Write(entry *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := o.writer
	if entry.Level >= ErrorLevel {
		w = o.errorWriter
	}
	_, err := w.Write(formatted)
	return err
}

// Close implements the Output interface but does nothing for console output.
func (o *ConsoleOutput) Close() error {
	return nil
}

// FileOutput appends log entries to a file.
type FileOutput struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileOutput opens (creating if needed) the log file at path.
func NewFileOutput(path string) (*FileOutput, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &FileOutput{file: f}, nil
}

// Write appends the formatted entry to the file.
func (o *FileOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.file.Write(formatted)
	return err
}

// Close closes the underlying file.
func (o *FileOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.file.Close()
}
