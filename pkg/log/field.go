package log

import "time"

// Field is a structured log field with a key and value.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field with the provided key and value.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Str creates a string field.
func Str(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field with a human-readable value.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Err creates an error field.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Component creates a component field.
func Component(name string) Field {
	return Field{Key: "component", Value: name}
}

// fieldsFrom converts a Field slice into a Fields map.
func fieldsFrom(fields []Field) Fields {
	if len(fields) == 0 {
		return nil
	}
	out := make(Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
