// Package validation turns gin binding failures into structured field errors.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/aura-events/venues/internal/apperr"
)

// MaxLength is the upper bound for every free-text field.
const MaxLength = 255

var registerOnce sync.Once

// Register makes validator report JSON field names instead of Go struct field names.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// BindJSON decodes and validates the request body into dst.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return Translate(err)
	}
	return nil
}

// ParamID parses a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation(map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}

// Translate converts a binding error into a validation *apperr.Error.
func Translate(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = reason(fe)
		}
		return apperr.Validation(fields)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.Validation(map[string]string{typeErr.Field: "must be a " + typeErr.Type.String()})
	}
	if errors.Is(err, io.EOF) {
		return apperr.Validation(map[string]string{"body": "request body is required"})
	}
	return apperr.Validation(map[string]string{"body": "malformed JSON"})
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
