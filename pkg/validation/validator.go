package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is a single field-level problem reported back to the caller.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MaxPasswordBytes is the longest secret bcrypt accepts.
const MaxPasswordBytes = 72

// New returns a validator engine with the aliases used for credentials.
// Aliases keep their own name in FieldError.Tag(), which lets each
// password rule carry a distinct message.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterAlias("hasupper", "containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	v.RegisterAlias("haslower", "containsany=abcdefghijklmnopqrstuvwxyz")
	v.RegisterAlias("hasdigit", "containsany=0123456789")
	// bcrypt rejects secrets longer than 72 bytes; max= counts runes
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	// postgres text columns reject 0x00
	_ = v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})
	return v
}

// ToDetails converts request decoding errors into violations suitable for
// the "details" array of a bad request.
func ToDetails(err error) []Violation {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.As(err, &se), errors.As(err, &ute), errors.Is(err, io.ErrUnexpectedEOF):
		return []Violation{{Field: "payload", Message: "Invalid JSON body"}}
	case errors.Is(err, io.EOF):
		return []Violation{{Field: "payload", Message: "Request body is empty"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Violation, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, Violation{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		return out
	}

	return []Violation{{Field: "payload", Message: "Invalid payload"}}
}

// formatFieldError is the generic message used when no field-specific
// message is registered.
func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "containsany":
		return "must contain at least one of '" + param + "'"
	case "hasupper":
		return "must contain at least one uppercase letter"
	case "haslower":
		return "must contain at least one lowercase letter"
	case "hasdigit":
		return "must contain at least one number"
	case "nonul":
		return "must not contain null characters"
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes)
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
