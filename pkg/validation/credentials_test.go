package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]any {
	return map[string]any{
		"email":     "a@b.com",
		"password":  "Password123",
		"firstName": "John",
		"lastName":  "Doe",
	}
}

func fields(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

func TestCredentialValidator_Accepts(t *testing.T) {
	res := NewCredentialValidator().Validate(map[string]any{
		"email":     "  TEST@EXAMPLE.COM ",
		"password":  "Password123",
		"firstName": "  John ",
		"lastName":  "Doe",
	})

	require.True(t, res.OK(), "violations: %v", res.Violations)
	assert.Equal(t, Credentials{
		Email:     "test@example.com",
		Password:  "Password123",
		FirstName: "John",
		LastName:  "Doe",
	}, res.Credentials)
}

func TestCredentialValidator_PasswordIsNotTrimmed(t *testing.T) {
	p := validPayload()
	p["password"] = " Password123 "

	res := NewCredentialValidator().Validate(p)

	require.True(t, res.OK())
	assert.Equal(t, " Password123 ", res.Credentials.Password)
}

func TestCredentialValidator_SingleFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{name: "invalid email", field: "email", value: "invalid-email", message: "Invalid email format"},
		{name: "blank email", field: "email", value: "   ", message: "Email is required"},
		{name: "email wrong type", field: "email", value: 42.0, message: "Expected string, received number"},
		{name: "short password", field: "password", value: "short1A", message: "Password must be at least 8 characters long"},
		{name: "password over bcrypt limit", field: "password", value: "Aa1" + strings.Repeat("é", 35), message: "Password must be at most 72 bytes long"},
		{name: "no uppercase", field: "password", value: "password123", message: "Password must contain at least one uppercase letter"},
		{name: "no lowercase", field: "password", value: "PASSWORD123", message: "Password must contain at least one lowercase letter"},
		{name: "no digit", field: "password", value: "Passwordxyz", message: "Password must contain at least one number"},
		{name: "password null", field: "password", value: nil, message: "Expected string, received null"},
		{name: "blank first name", field: "firstName", value: "  ", message: "First name is required"},
		{name: "long first name", field: "firstName", value: strings.Repeat("a", 101), message: "First name must be at most 100 characters"},
		{name: "long last name", field: "lastName", value: strings.Repeat("b", 101), message: "Last name must be at most 100 characters"},
		{name: "last name bool", field: "lastName", value: true, message: "Expected string, received boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p[tt.field] = tt.value

			res := NewCredentialValidator().Validate(p)

			require.False(t, res.OK())
			assert.Equal(t, []Violation{{Field: tt.field, Message: tt.message}}, res.Violations)
			assert.Equal(t, Credentials{}, res.Credentials)
		})
	}
}

func TestCredentialValidator_NameLengthBoundary(t *testing.T) {
	p := validPayload()
	p["firstName"] = strings.Repeat("é", 100)
	p["lastName"] = "  " + strings.Repeat("x", 100) + "  "

	res := NewCredentialValidator().Validate(p)

	assert.True(t, res.OK(), "violations: %v", res.Violations)
}

func TestCredentialValidator_EmailLengthBoundary(t *testing.T) {
	label := strings.Repeat("d", 60)
	domain := "@" + label + "." + label + "." + label + "." + label + ".com"
	atLimit := strings.Repeat("a", 255-len(domain)) + domain
	require.Len(t, atLimit, 255)

	p := validPayload()
	p["email"] = atLimit
	res := NewCredentialValidator().Validate(p)
	assert.True(t, res.OK(), "violations: %v", res.Violations)

	p["email"] = "a" + atLimit
	res = NewCredentialValidator().Validate(p)
	assert.Equal(t, []Violation{{Field: "email", Message: "Email must be at most 255 characters"}}, res.Violations)
}

func TestCredentialValidator_RejectsNullCharacters(t *testing.T) {
	tests := []struct {
		field   string
		value   string
		message string
	}{
		{field: "email", value: "jo\x00hn@example.com", message: "Email must not contain null characters"},
		{field: "firstName", value: "Jo\x00hn", message: "First name must not contain null characters"},
		{field: "lastName", value: "Doe\x00", message: "Last name must not contain null characters"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := validPayload()
			p[tt.field] = tt.value

			res := NewCredentialValidator().Validate(p)

			assert.False(t, res.OK())
			assert.Equal(t, []Violation{{Field: tt.field, Message: tt.message}}, res.Violations)
		})
	}
}

func TestCredentialValidator_MissingNames(t *testing.T) {
	p := validPayload()
	delete(p, "firstName")
	delete(p, "lastName")

	res := NewCredentialValidator().Validate(p)

	assert.Equal(t, []Violation{
		{Field: "firstName", Message: "Required"},
		{Field: "lastName", Message: "Required"},
	}, res.Violations)
}

func TestCredentialValidator_ReportsEveryFieldInDeclarationOrder(t *testing.T) {
	res := NewCredentialValidator().Validate(map[string]any{
		"lastName":  "",
		"firstName": "",
		"password":  "abc",
		"email":     "nope",
	})

	assert.Equal(t, []string{"email", "password", "firstName", "lastName"}, fields(res.Violations))
}

func TestCredentialValidator_EmptyPayload(t *testing.T) {
	res := NewCredentialValidator().Validate(map[string]any{})

	assert.Equal(t, []string{"email", "password", "firstName", "lastName"}, fields(res.Violations))
	for _, v := range res.Violations {
		assert.Equal(t, "Required", v.Message)
	}
}

func TestCredentialValidator_RejectsUnknownKeys(t *testing.T) {
	p := validPayload()
	p["role"] = "admin"
	p["isVerified"] = true
	p["email"] = "bad"

	res := NewCredentialValidator().Validate(p)

	assert.Equal(t, []Violation{
		{Field: "email", Message: "Invalid email format"},
		{Field: "isVerified", Message: "Unrecognized key"},
		{Field: "role", Message: "Unrecognized key"},
	}, res.Violations)
}
