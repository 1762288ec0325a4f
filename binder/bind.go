package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// parseFieldTag returns the parameter name for a struct field and whether
// the field should be skipped. The tag value "-" skips the field; an absent
// tag skips it too so each binder only touches its own tags.
func parseFieldTag(field reflect.StructField, tag string) (string, bool) {
	value, ok := field.Tag.Lookup(tag)
	if !ok || value == "-" {
		return "", true
	}
	// Strip options like ",omitempty"
	if idx := strings.Index(value, ","); idx != -1 {
		value = value[:idx]
	}
	if value == "" {
		return "", true
	}
	return value, false
}

// bindToStruct populates v's fields carrying the given tag from values.
// Missing parameters leave fields at their zero values. Parse failures are
// wrapped in sentinel so callers can classify the source binder.
func bindToStruct(v any, tag string, values url.Values, sentinel error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", sentinel)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", sentinel)
	}

	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		paramName, skip := parseFieldTag(fieldType, tag)
		if skip {
			continue
		}

		raw, ok := values[paramName]
		if !ok || len(raw) == 0 {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", sentinel, fieldType.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a struct field from raw string values, supporting
// basic types, slices of basic types for multi-value parameters, and
// pointers for optional fields.
func setFieldValue(field reflect.Value, fieldType reflect.Type, raw []string) error {
	switch fieldType.Kind() {
	case reflect.Ptr:
		elem := reflect.New(fieldType.Elem())
		if err := setFieldValue(elem.Elem(), fieldType.Elem(), raw); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	case reflect.Slice:
		slice := reflect.MakeSlice(fieldType, len(raw), len(raw))
		for i, v := range raw {
			if err := setScalar(slice.Index(i), fieldType.Elem(), v); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	default:
		return setScalar(field, fieldType, raw[0])
	}
}

func setScalar(field reflect.Value, fieldType reflect.Type, value string) error {
	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as integer", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as unsigned integer", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as float", value)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cannot parse %q as bool", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", fieldType.Kind())
	}
	return nil
}
