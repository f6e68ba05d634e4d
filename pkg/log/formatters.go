package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// JSONFormatter formats log entries as JSON, one object per line.
type JSONFormatter struct {
	TimestampFormat string
}

// Format formats the entry as JSON.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+3)

	timestampFormat := time.RFC3339
	if f.TimestampFormat != "" {
		timestampFormat = f.TimestampFormat
	}
	data["timestamp"] = entry.Timestamp.Format(timestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	for k, v := range entry.Fields {
		// Don't overwrite standard fields
		if k != "timestamp" && k != "level" && k != "message" {
			data[k] = v
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// TextFormatter formats log entries as human-readable text.
type TextFormatter struct {
	TimestampFormat  string
	DisableColors    bool
	DisableTimestamp bool
}

// NewTextFormatter creates a TextFormatter with sensible defaults.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		TimestampFormat: "15:04:05.000",
	}
}

// Format formats the entry as text.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b strings.Builder

	if !f.DisableTimestamp {
		ts := entry.Timestamp.Format(f.TimestampFormat)
		if !f.DisableColors {
			ts = colorDim + ts + colorReset
		}
		b.WriteString(ts)
		b.WriteByte(' ')
	}

	if f.DisableColors {
		b.WriteString(entry.Level.String())
	} else {
		b.WriteString(colorizeLevel(entry.Level))
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	// Fields are sorted so output is stable.
	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if f.DisableColors {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		} else {
			fmt.Fprintf(&b, " %s%s%s=%v", colorCyan, k, colorReset, entry.Fields[k])
		}
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// Color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[90m"
)

// colorizeLevel adds color to log levels
func colorizeLevel(level Level) string {
	switch level {
	case DebugLevel:
		return colorBlue + "DBG" + colorReset
	case InfoLevel:
		return colorGreen + "INF" + colorReset
	case WarnLevel:
		return colorYellow + "WRN" + colorReset
	case ErrorLevel:
		return colorRed + "ERR" + colorReset
	case FatalLevel:
		return colorRed + "FTL" + colorReset
	default:
		return level.String()
	}
}
