package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Credentials is a registration payload that passed every rule, already
// normalized: email trimmed and lower-cased, names trimmed.
type Credentials struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validation is the outcome of CredentialValidator.Validate. Exactly one of
// Credentials or Violations is meaningful; check OK before using either.
type Validation struct {
	Credentials Credentials
	Violations  []Violation
}

// OK reports whether the payload was accepted.
func (v Validation) OK() bool { return len(v.Violations) == 0 }

type normalizer func(string) string

type fieldRule struct {
	name      string
	tag       string
	normalize normalizer
	messages  map[string]string
	assign    func(c *Credentials, v string)
}

func lowerTrim(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Declaration order is the order violations are reported in.
var credentialRules = []fieldRule{
	{
		name:      "email",
		tag:       "required,nonul,max=255,email",
		normalize: lowerTrim,
		messages: map[string]string{
			"required": "Email is required",
			"nonul":    "Email must not contain null characters",
			"max":      "Email must be at most 255 characters",
			"email":    "Invalid email format",
		},
		assign: func(c *Credentials, v string) { c.Email = v },
	},
	{
		name: "password",
		tag:  "min=8,bcryptlen,hasupper,haslower,hasdigit",
		messages: map[string]string{
			"min":       "Password must be at least 8 characters long",
			"bcryptlen": "Password must be at most 72 bytes long",
			"hasupper":  "Password must contain at least one uppercase letter",
			"haslower":  "Password must contain at least one lowercase letter",
			"hasdigit":  "Password must contain at least one number",
		},
		assign: func(c *Credentials, v string) { c.Password = v },
	},
	{
		name:      "firstName",
		tag:       "required,nonul,max=100",
		normalize: strings.TrimSpace,
		messages: map[string]string{
			"required": "First name is required",
			"nonul":    "First name must not contain null characters",
			"max":      "First name must be at most 100 characters",
		},
		assign: func(c *Credentials, v string) { c.FirstName = v },
	},
	{
		name:      "lastName",
		tag:       "required,nonul,max=100",
		normalize: strings.TrimSpace,
		messages: map[string]string{
			"required": "Last name is required",
			"nonul":    "Last name must not contain null characters",
			"max":      "Last name must be at most 100 characters",
		},
		assign: func(c *Credentials, v string) { c.LastName = v },
	},
}

// CredentialValidator checks a raw registration payload against the
// credential rules. It never short-circuits: every field is checked so the
// caller sees all problems in one pass.
type CredentialValidator struct {
	engine *validator.Validate
	known  map[string]struct{}
}

func NewCredentialValidator() *CredentialValidator {
	known := make(map[string]struct{}, len(credentialRules))
	for _, r := range credentialRules {
		known[r.name] = struct{}{}
	}
	return &CredentialValidator{engine: New(), known: known}
}

// Validate checks raw and returns either normalized credentials or the
// ordered violations. Unknown keys are rejected after the declared fields,
// in sorted key order.
func (cv *CredentialValidator) Validate(raw map[string]any) Validation {
	var out Validation

	for _, rule := range credentialRules {
		val, present := raw[rule.name]
		if !present {
			out.Violations = append(out.Violations, Violation{Field: rule.name, Message: "Required"})
			continue
		}
		s, ok := val.(string)
		if !ok {
			out.Violations = append(out.Violations, Violation{
				Field:   rule.name,
				Message: fmt.Sprintf("Expected string, received %s", jsonType(val)),
			})
			continue
		}
		if rule.normalize != nil {
			s = rule.normalize(s)
		}
		if msg, failed := cv.check(rule, s); failed {
			out.Violations = append(out.Violations, Violation{Field: rule.name, Message: msg})
			continue
		}
		rule.assign(&out.Credentials, s)
	}

	unknown := make([]string, 0)
	for k := range raw {
		if _, ok := cv.known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		out.Violations = append(out.Violations, Violation{Field: k, Message: "Unrecognized key"})
	}

	if !out.OK() {
		out.Credentials = Credentials{}
	}
	return out
}

func (cv *CredentialValidator) check(rule fieldRule, value string) (string, bool) {
	err := cv.engine.Var(value, rule.tag)
	if err == nil {
		return "", false
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error(), true
	}
	fe := verrs[0]
	if msg, ok := rule.messages[fe.Tag()]; ok {
		return msg, true
	}
	return formatFieldError(fe), true
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
