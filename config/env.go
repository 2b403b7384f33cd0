// Package config loads configuration for steps and their middleware.
//
// Three sources are supported and are meant to be layered in this order:
// a YAML file ([LoadFile]), dotenv files ([LoadDotenv]) and the process
// environment ([Load]).
//
// Environment variable names follow the pattern:
//
//	{Prefix}_{SECTION}_{FIELD}
//
// Named nested structs add their field name as a path segment, embedded
// structs are flattened. Go field names are converted from CamelCase to
// UPPER_SNAKE_CASE:
//
//	LevelSuccess   → LEVEL_SUCCESS
//	MessageFailure → MESSAGE_FAILURE
//
// Supported field types: string, bool, int*, uint*, float*, time.Duration.
// Other field types (slices, funcs, interfaces, pointers) are skipped.
//
// Example with middleware.LogConfig and section "log":
//
//	GOSTEP_LOG_LEVEL_SUCCESS=info
//	GOSTEP_LOG_DISABLED=true
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Loader reads environment variables into configuration structs.
type Loader struct {
	// Prefix for environment variable names.
	// Default: "GOSTEP".
	Prefix string

	// lookup overrides os.LookupEnv for testing.
	lookup func(string) (string, bool)
}

func (l Loader) prefix() string {
	if l.Prefix == "" {
		return "GOSTEP"
	}
	return l.Prefix
}

func (l Loader) lookupEnv(key string) (string, bool) {
	if l.lookup != nil {
		return l.lookup(key)
	}
	return os.LookupEnv(key)
}

// Load populates the struct pointed to by dst from environment variables
// below the given section. Fields without a variable keep their value, so
// Load overlays the environment on top of defaults or a loaded file.
func (l Loader) Load(section string, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: dst must be a pointer to a struct, got %T", dst)
	}
	return walk(l.key(section), v.Elem(), func(key string, fv reflect.Value) error {
		raw, ok := l.lookupEnv(key)
		if !ok {
			return nil
		}
		return setField(fv, raw, key)
	})
}

// Keys returns the environment variable names Load would check for dst.
// dst may be a struct or a pointer to a struct.
func (l Loader) Keys(section string, dst any) []string {
	v := reflect.ValueOf(dst)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	_ = walk(l.key(section), v, func(key string, _ reflect.Value) error {
		keys = append(keys, key)
		return nil
	})
	return keys
}

func (l Loader) key(section string) string {
	return l.prefix() + "_" + normalizeSection(section)
}

// Load populates dst using the default Loader with prefix "GOSTEP".
func Load(section string, dst any) error {
	return Loader{}.Load(section, dst)
}

// Keys returns variable names using the default Loader with prefix "GOSTEP".
func Keys(section string, dst any) []string {
	return Loader{}.Keys(section, dst)
}

// walk calls visit for every supported leaf field of v with its
// environment variable key.
func walk(prefix string, v reflect.Value, visit func(key string, fv reflect.Value) error) error {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)

		// Exported fields of unexported embedded structs are promoted.
		if !field.IsExported() && !(field.Anonymous && field.Type.Kind() == reflect.Struct) {
			continue
		}

		key := prefix
		if !field.Anonymous {
			key = prefix + "_" + toUpperSnake(field.Name)
		}

		switch {
		case field.Type == durationType, isSupportedKind(field.Type.Kind()):
			if err := visit(key, fv); err != nil {
				return err
			}
		case field.Type.Kind() == reflect.Struct:
			if err := walk(key, fv, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

func isSupportedKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func setField(v reflect.Value, raw, key string) error {
	if v.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetInt(int64(d))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetBool(b)
	}
	return nil
}

// normalizeSection uppercases letters, maps hyphens, spaces and underscores
// to underscores and drops everything else.
func normalizeSection(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(unicode.ToUpper(r))
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '_':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// toUpperSnake converts a Go CamelCase field name to UPPER_SNAKE_CASE.
//
//	LevelSuccess → LEVEL_SUCCESS
//	URLPath      → URL_PATH
func toUpperSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune('_')
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
