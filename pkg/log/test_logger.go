package log

import "sync"

// entrySink collects entries from a TestLogger and all loggers derived
// from it.
type entrySink struct {
	mu      sync.Mutex
	entries []Entry
}

// TestLogger is a Logger that records entries in memory for assertions.
type TestLogger struct {
	level  Level
	fields Fields
	sink   *entrySink
}

var _ Logger = &TestLogger{}

// NewTestLogger creates a logger that captures entries instead of writing
// them anywhere.
func NewTestLogger() *TestLogger {
	return &TestLogger{
		level:  DebugLevel,
		fields: Fields{},
		sink:   &entrySink{},
	}
}

// Entries returns a copy of all captured entries.
func (l *TestLogger) Entries() []Entry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]Entry, len(l.sink.entries))
	copy(out, l.sink.entries)
	return out
}

// Messages returns the captured messages in order.
func (l *TestLogger) Messages() []string {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]string, 0, len(l.sink.entries))
	for _, e := range l.sink.entries {
		out = append(out, e.Message)
	}
	return out
}

func (l *TestLogger) record(level Level, msg string, fields []Field) {
	entry := Entry{Level: level, Message: msg, Fields: Fields{}}
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, entry)
}

func (l *TestLogger) Debug(msg string, fields ...Field) { l.record(DebugLevel, msg, fields) }
func (l *TestLogger) Info(msg string, fields ...Field)  { l.record(InfoLevel, msg, fields) }
func (l *TestLogger) Warn(msg string, fields ...Field)  { l.record(WarnLevel, msg, fields) }
func (l *TestLogger) Error(msg string, fields ...Field) { l.record(ErrorLevel, msg, fields) }

// Fatal records the entry but does not exit, so tests can assert on it.
func (l *TestLogger) Fatal(msg string, fields ...Field) { l.record(FatalLevel, msg, fields) }

// With returns a logger sharing the same entry sink with extra fields.
func (l *TestLogger) With(fields ...Field) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &TestLogger{level: l.level, fields: merged, sink: l.sink}
}

// WithComponent tags entries with a component name.
func (l *TestLogger) WithComponent(component string) Logger {
	return l.With(Component(component))
}

func (l *TestLogger) SetLevel(level Level) { l.level = level }
func (l *TestLogger) GetLevel() Level      { return l.level }
