// Package config loads siggn.Config and the middleware configs from YAML
// files and environment variables.
//
// Environment variable names follow the pattern:
//
//	{Prefix}_{STAGE}_{FIELD}
//
// FIELD is the upper-cased yaml tag name of the field when it has one, and
// the Go field name converted to UPPER_SNAKE_CASE otherwise:
//
//	IDPrefix `yaml:"id_prefix"`  → ID_PREFIX
//	DisableRecover               → DISABLE_RECOVER
//
// Named nested structs add a path segment, embedded structs are flattened.
// Fields tagged `yaml:"-"` are skipped.
//
// Supported field types: string, bool, int*, uint*, float*, time.Duration and
// slices of these, written comma separated. Fields of other types (loggers,
// registerers, providers) are skipped.
//
// Example with siggn.Config and stage "orders":
//
//	SIGGN_ORDERS_NAME=orders
//	SIGGN_ORDERS_ID_PREFIX=ord_
//	SIGGN_ORDERS_DISABLE_RECOVER=true
//
// Example with middleware.PrometheusConfig and stage "metrics":
//
//	SIGGN_METRICS_NAMESPACE=shop
//	SIGGN_METRICS_BUCKETS=0.001,0.01,0.1
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

// DefaultPrefix is the env var prefix of the package level functions.
const DefaultPrefix = "SIGGN"

var durationType = reflect.TypeOf(time.Duration(0))

// Loader reads environment variables into configuration structs.
type Loader struct {
	// Prefix for environment variable names.
	// Default: "SIGGN".
	Prefix string

	// lookup overrides os.LookupEnv for testing.
	lookup func(string) (string, bool)
}

func (l Loader) prefix() string {
	if l.Prefix == "" {
		return DefaultPrefix
	}
	return l.Prefix
}

func (l Loader) lookupEnv(key string) (string, bool) {
	if l.lookup != nil {
		return l.lookup(key)
	}
	return os.LookupEnv(key)
}

// Load populates the struct pointed to by dst with values from environment
// variables. The stage identifies the bus or middleware being configured and
// becomes the second segment of the variable name.
//
// Only fields with set environment variables are modified, so Load can be
// used to overlay environment overrides on defaults or file values.
func (l Loader) Load(stage string, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: dst must be a pointer to a struct, got %T", dst)
	}
	return walk(l.stagePrefix(stage), v.Elem(), func(key string, fv reflect.Value) error {
		raw, ok := l.lookupEnv(key)
		if !ok {
			return nil
		}
		return set(fv, raw, key)
	})
}

// Keys returns the environment variable names that [Loader.Load] would check
// for the given config struct. dst may be a struct value or a pointer to one.
func (l Loader) Keys(stage string, dst any) []string {
	v := reflect.ValueOf(dst)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	_ = walk(l.stagePrefix(stage), v, func(key string, _ reflect.Value) error {
		keys = append(keys, key)
		return nil
	})
	return keys
}

func (l Loader) stagePrefix(stage string) string {
	return l.prefix() + "_" + normalizeStage(stage)
}

// Load populates dst using the default Loader.
func Load(stage string, dst any) error {
	return Loader{}.Load(stage, dst)
}

// Keys returns env var names using the default Loader.
func Keys(stage string, dst any) []string {
	return Loader{}.Keys(stage, dst)
}

// walk calls visit for every supported leaf field of v with its env key.
func walk(prefix string, v reflect.Value, visit func(key string, fv reflect.Value) error) error {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)

		// Exported fields of unexported embedded structs are promoted.
		if !field.IsExported() {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				if err := walk(prefix, fv, visit); err != nil {
					return err
				}
			}
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}
		key := prefix
		if !field.Anonymous {
			key = prefix + "_" + name
		}

		switch {
		case field.Type == durationType:
		case field.Type.Kind() == reflect.Struct:
			if err := walk(key, fv, visit); err != nil {
				return err
			}
			continue
		case field.Type.Kind() == reflect.Slice:
			if !isSupported(field.Type.Elem()) {
				continue
			}
		case !isSupported(field.Type):
			continue
		}

		if err := visit(key, fv); err != nil {
			return err
		}
	}
	return nil
}

func fieldName(field reflect.StructField) (name string, skip bool) {
	tag, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
	switch tag {
	case "-":
		return "", true
	case "":
		return toUpperSnake(field.Name), false
	}
	return normalizeStage(tag), false
}

func isSupported(t reflect.Type) bool {
	if t == durationType {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func set(v reflect.Value, raw, key string) error {
	if v.Kind() != reflect.Slice {
		return setScalar(v, raw, key)
	}
	var parts []string
	if raw = strings.TrimSpace(raw); raw != "" {
		parts = strings.Split(raw, ",")
	}
	s := reflect.MakeSlice(v.Type(), len(parts), len(parts))
	for i, p := range parts {
		if err := setScalar(s.Index(i), strings.TrimSpace(p), key); err != nil {
			return err
		}
	}
	v.Set(s)
	return nil
}

func setScalar(v reflect.Value, raw, key string) error {
	// time.Duration is int64 underneath but parsed as "5s", "100ms".
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

// normalizeStage converts a stage or tag name to a valid env var segment.
// Letters are uppercased, hyphens, spaces and underscores become
// underscores, and other characters are dropped.
func normalizeStage(s string) string {
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
//	DisableRecover → DISABLE_RECOVER
//	IDPrefix       → ID_PREFIX
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
