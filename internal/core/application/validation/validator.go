// Package validation checks restock order payloads at the edge of the application.
//
// Every operation decodes a raw JSON body, drops unknown keys, trims free text and
// returns either a sanitized, typed payload or an *errs.ValidationError listing every
// violation found. Field paths are dotted and indexed, e.g. "items.0.quantity".
//
// Only membership rules live here: any of the eight statuses is an acceptable target.
// Whether a transition is legal is decided by the restockorder domain package.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

const (
	// BodyField names violations that concern the payload as a whole.
	BodyField = "body"

	dateLayout = time.DateOnly
)

// RestockOrderValidator validates create, status update and delivery confirmation
// payloads. It also implements echo.Validator for bound query parameters.
// It is safe for concurrent use.
type RestockOrderValidator struct {
	validate *validator.Validate
}

func NewRestockOrderValidator() *RestockOrderValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	mustRegister(v, "objectid", isObjectID)
	mustRegister(v, "whole", isWhole)
	mustRegister(v, "restock_status", isRestockStatus)
	mustRegister(v, "isodate", isISODate)

	return &RestockOrderValidator{validate: v}
}

// Validate implements echo.Validator. It returns nil or an *errs.ValidationError.
func (v *RestockOrderValidator) Validate(i any) error {
	target := errs.NewValidationError()
	v.collect(target, i)
	return target.OrNil()
}

func (v *RestockOrderValidator) collect(target *errs.ValidationError, s any) {
	err := v.validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		target.Add(BodyField, err.Error())
		return
	}
	for _, fe := range fieldErrors {
		target.Add(fieldPath(fe.Namespace()), message(fe))
	}
}

// decode unmarshals body into dst. Type mismatches are reported under prefix+field;
// ok is false when nothing usable could be decoded.
func decode(body []byte, dst any, prefix string, target *errs.ValidationError) (ok bool) {
	self := strings.TrimSuffix(prefix, ".")
	if self == "" {
		self = BodyField
	}

	if len(bytes.TrimSpace(body)) == 0 {
		target.Add(self, "must be a JSON object")
		return false
	}

	err := json.Unmarshal(body, dst)
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case err == nil:
		return true
	case errors.As(err, &typeErr) && typeErr.Field != "":
		target.Add(prefix+typeErr.Field, "must be "+jsonKind(typeErr.Type))
		return true
	case errors.As(err, &typeErr):
		target.Add(self, "must be a JSON object")
		return false
	case errors.As(err, &syntaxErr):
		target.Add(self, fmt.Sprintf("is not valid JSON: %s at offset %d", syntaxErr.Error(), syntaxErr.Offset))
		return false
	default:
		target.Add(self, err.Error())
		return false
	}
}

// fieldName resolves the name reported for a struct field: path and query
// parameter names first, then the JSON key.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"param", "query", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// fieldPath turns "createRequest.items[0].quantity" into "items.0.quantity".
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		namespace = rest
	}
	return strings.NewReplacer("[", ".", "]", "").Replace(namespace)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "objectid":
		return fmt.Sprintf("must be a %d character hexadecimal identifier", kernel.IDLength)
	case "whole":
		return "must be an integer"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "restock_status":
		return "must be one of " + strings.Join(restockorder.StatusLiterals(), ", ")
	case "isodate":
		return "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"
	default:
		return "is invalid"
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func isObjectID(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && kernel.IsValidIDHex(fl.Field().String())
}

func isWhole(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
	default:
		return false
	}
}

func isRestockStatus(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := restockorder.ParseStatus(fl.Field().String())
	return err == nil
}

func isISODate(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := parseDate(fl.Field().String())
	return err == nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
