// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by types that bind their own flags manually.
// When a struct field's type implements FlagBinder, [BindFlags] calls
// AddFlags instead of reflecting struct tags.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the tagged
// fields of params. params must be a pointer to a struct. Panics on
// invalid input (programming error, not runtime data).
//
//	var params decodeParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("decode", &params)
//	    },
//	    Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
//	        // params fields are populated after flag parsing
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers pflag entries for each tagged field in params.
// params must be a pointer to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n": the long flag name and optional
//     single-character shorthand. Fields without a flag tag are skipped.
//   - desc:"help text": the flag's help description.
//   - default:"value": the default value, parsed according to the
//     field's Go type. If omitted, the type's zero value is used.
//   - enum:"a,b,c": string fields only. Values outside the list are
//     rejected while parsing, and the choices are appended to the help
//     text.
//
// # Supported field types
//
// string, bool, int, int64, []string.
//
// Embedded structs are bound recursively unless they implement
// [FlagBinder], in which case AddFlags is called. Named struct fields
// implementing FlagBinder are bound the same way.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStructFields(value.Elem(), flagSet)
}

func bindStructFields(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Type.Kind() == reflect.Struct && field.IsExported() && fieldValue.CanAddr() {
			if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
				binder.AddFlags(flagSet)
				continue
			}
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStructFields(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		flagTag := field.Tag.Get("flag")
		if flagTag == "" {
			continue
		}
		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}

		name, shorthand, _ := strings.Cut(flagTag, ",")
		tags := fieldTags{
			description: field.Tag.Get("desc"),
			defaultText: field.Tag.Get("default"),
			enum:        field.Tag.Get("enum"),
		}
		if err := bindField(fieldValue, flagSet, name, shorthand, tags); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

type fieldTags struct {
	description string
	defaultText string
	enum        string
}

func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, name, shorthand string, tags fieldTags) error {
	pointer := fieldValue.Addr().Interface()

	if tags.enum != "" {
		target, ok := pointer.(*string)
		if !ok {
			return fmt.Errorf("enum tag on non-string flag --%s", name)
		}
		choices := strings.Split(tags.enum, ",")
		if tags.defaultText != "" && !slices.Contains(choices, tags.defaultText) {
			return fmt.Errorf("default %q for --%s is not one of %s", tags.defaultText, name, tags.enum)
		}
		*target = tags.defaultText
		description := fmt.Sprintf("%s (%s)", tags.description, strings.Join(choices, "|"))
		flagSet.VarP(&enumValue{target: target, choices: choices}, name, shorthand, description)
		return nil
	}

	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, tags.defaultText, tags.description)

	case *bool:
		defaultValue := false
		if tags.defaultText != "" {
			parsed, err := strconv.ParseBool(tags.defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", name, err)
			}
			defaultValue = parsed
		}
		flagSet.BoolVarP(target, name, shorthand, defaultValue, tags.description)

	case *int:
		defaultValue := 0
		if tags.defaultText != "" {
			parsed, err := strconv.Atoi(tags.defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", name, err)
			}
			defaultValue = parsed
		}
		flagSet.IntVarP(target, name, shorthand, defaultValue, tags.description)

	case *int64:
		var defaultValue int64
		if tags.defaultText != "" {
			parsed, err := strconv.ParseInt(tags.defaultText, 10, 64)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", name, err)
			}
			defaultValue = parsed
		}
		flagSet.Int64VarP(target, name, shorthand, defaultValue, tags.description)

	case *[]string:
		var defaultValue []string
		if tags.defaultText != "" {
			defaultValue = strings.Split(tags.defaultText, ",")
		}
		flagSet.StringSliceVarP(target, name, shorthand, defaultValue, tags.description)

	default:
		return fmt.Errorf("unsupported type %s for flag --%s", fieldValue.Type(), name)
	}

	return nil
}

// enumValue is a string flag restricted to a fixed set of choices.
type enumValue struct {
	target  *string
	choices []string
}

func (e *enumValue) String() string {
	if e.target == nil {
		return ""
	}
	return *e.target
}

func (e *enumValue) Set(value string) error {
	if !slices.Contains(e.choices, value) {
		return fmt.Errorf("must be one of %s", strings.Join(e.choices, ", "))
	}
	*e.target = value
	return nil
}

func (e *enumValue) Type() string { return "string" }
