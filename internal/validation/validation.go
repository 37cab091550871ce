// Package validation evaluates declarative field rules on request inputs and
// shapes failures into the per-field message map the API envelope exposes.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldErrors maps a field name to the messages of every rule it violated.
type FieldErrors map[string][]string

// Add appends a violation message for a field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Merge folds other's messages into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		f[field] = append(f[field], messages...)
	}
}

// Any reports whether at least one violation was recorded.
func (f FieldErrors) Any() bool {
	return len(f) > 0
}

// Summary renders all violations as a single line: each field name is
// capitalized and prefixed to its messages joined with ", ", and fields are
// joined with " | ". Field order is lexicographic for determinism.
func (f FieldErrors) Summary() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, ucfirst(field)+": "+strings.Join(f[field], ", "))
	}
	return strings.Join(parts, " | ")
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Struct evaluates the validate tags on s and returns the violations found.
// Every violated rule of a field is reported, in the order the rules are
// declared. Fields tagged omitnil are skipped entirely when absent from the
// input, and an empty value only reports required, never the later rules.
func Struct(s any) FieldErrors {
	fields := FieldErrors{}
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || tag == "-" || !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		value := v.Field(i)

		rules := strings.Split(tag, ",")
		if rules[0] == "omitnil" {
			if value.Kind() == reflect.Pointer && value.IsNil() {
				continue
			}
			rules = rules[1:]
		}

		fv := value
		for fv.Kind() == reflect.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if isEmpty(value, fv) {
			for _, rule := range rules {
				if rule == "required" {
					fields.Add(name, message(name, "required", ""))
					break
				}
			}
			continue
		}

		for _, rule := range rules {
			if rule == "" || rule == "required" {
				continue
			}
			ruleName, param, _ := strings.Cut(rule, "=")
			var err error
			if ruleName == "eqfield" {
				other := v.FieldByName(param)
				for other.Kind() == reflect.Pointer && !other.IsNil() {
					other = other.Elem()
				}
				err = validate.VarWithValue(fv.Interface(), other.Interface(), "eqfield")
			} else {
				err = validate.Var(fv.Interface(), rule)
			}
			if err != nil {
				fields.Add(name, message(name, ruleName, param))
			}
		}
	}
	return fields
}

// fieldName resolves the wire name of a struct field, json tag first.
func fieldName(sf reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(sf.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

// isEmpty reports whether a field carries no value to validate: a nil
// pointer, or a blank string after dereferencing.
func isEmpty(value, deref reflect.Value) bool {
	if value.Kind() == reflect.Pointer && value.IsNil() {
		return true
	}
	return deref.Kind() == reflect.String && deref.String() == ""
}

// message renders a human-readable violation for a failed rule.
func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", field, param)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
