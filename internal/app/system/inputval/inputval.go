// Package inputval validates form input structs with go-playground/validator
// and turns the failures into short, user-facing messages.
//
// Fields are tagged with `validate:"..."` rules and a `label:"..."` used in
// the message:
//
//	type createPeriodInput struct {
//		CabinetName string `validate:"required,max=120" label:"Nama kabinet"`
//		StartYear   int    `validate:"year" label:"Tahun mulai"`
//	}
package inputval

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Year bounds accepted by the "year" rule.
const (
	MinYear = 2000
	MaxYear = 2100
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string // Go field name
	Label   string
	Tag     string
	Message string
}

// Result collects the failures of one Validate call, in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Messages returns every message.
func (r Result) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("objectid", isObjectID)
		_ = v.RegisterValidation("httpurl", isHTTPURL)
		_ = v.RegisterValidation("year", isYear)
	})
	return v
}

// Validate runs the struct's rules. s must be a struct or pointer to struct.
func Validate(s any) Result {
	err := instance().Struct(s)
	if err == nil {
		return Result{}
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Result{Errors: []FieldError{{Tag: "invalid", Message: "Input tidak valid."}}}
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, FieldError{
			Field:   fe.StructField(),
			Label:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe, t),
		})
	}
	return Result{Errors: out}
}

func message(fe validator.FieldError, t reflect.Type) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " wajib diisi."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s maksimal %s karakter.", label, fe.Param())
		}
		return fmt.Sprintf("%s maksimal %s.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s minimal %s karakter.", label, fe.Param())
		}
		return fmt.Sprintf("%s minimal %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return "Pilihan " + strings.ToLower(label) + " tidak valid."
	case "httpurl":
		return label + " harus berupa URL http(s) yang valid."
	case "year":
		return fmt.Sprintf("%s harus tahun antara %d dan %d.", label, MinYear, MaxYear)
	case "gtefield":
		return fmt.Sprintf("%s tidak boleh lebih kecil dari %s.", label, labelOf(t, fe.Param()))
	default:
		return label + " tidak valid."
	}
}

// labelOf returns the label tag of the named field of t, or the name itself.
func labelOf(t reflect.Type, name string) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(name); ok {
			if l := f.Tag.Get("label"); l != "" {
				return strings.ToLower(l)
			}
		}
	}
	return name
}

func isObjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		// Emptiness is the job of "required".
		return true
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

func isHTTPURL(fl validator.FieldLevel) bool {
	return IsHTTPURL(fl.Field().String())
}

func isYear(fl validator.FieldLevel) bool {
	y := fl.Field().Int()
	return y >= MinYear && y <= MaxYear
}

// IsHTTPURL reports whether s is empty or an absolute http(s) URL with a host.
func IsHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
