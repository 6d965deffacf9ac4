// Package validate turns loosely-typed request payloads into fully-typed
// values or a field-scoped list of errors. Coercion lives in the field types,
// constraint checking in per-entity Validate methods backed by a shared
// validator instance.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vds-erp/vds-erp/internal/platform/httpx"
)

// Errors is a list of field-scoped validation failures.
type Errors []httpx.FieldError

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e[0].Path, e[0].Message)
}

// Add appends a failure for the named field.
func (e *Errors) Add(path, message string) {
	*e = append(*e, httpx.FieldError{Path: path, Message: message})
}

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		ns := field.Interface().(NullString)
		if !ns.Present || ns.Null {
			return ""
		}
		return ns.String
	}, NullString{})
	return v
}

// Struct runs tag-based constraints on s and maps every failure to a field
// error. messages overrides the default text per "field.tag" key.
func Struct(s any, messages map[string]string) Errors {
	err := instance.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Path: "", Message: err.Error()}}
	}
	var out Errors
	for _, fe := range verrs {
		path := fe.Field()
		if msg, ok := messages[path+"."+fe.Tag()]; ok {
			out.Add(path, msg)
			continue
		}
		out.Add(path, defaultMessage(fe))
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "max":
		return fmt.Sprintf("%s too long", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// OneOf reports whether value belongs to the closed set.
func OneOf(value string, set ...string) bool {
	for _, s := range set {
		if value == s {
			return true
		}
	}
	return false
}
