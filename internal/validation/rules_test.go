package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSimpleEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"a@b", false},
		{"a.com", false},
		{"ana@valeshop.com.br", true},
		{"a@b.c", true},
		{"ana@valeshop", false},
		{"ana valeshop.com", false},
		{"ana @valeshop.com", false},
		{"ana@@valeshop.com", false},
		{"@valeshop.com", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSimpleEmail(tt.in), tt.in)
	}
}

func TestIsPositiveNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"8.5", true},
		{" 4 ", true},
		{"0", false},
		{"-5", false},
		{"abc", false},
		{"NaN", false},
		{"", false},
		{"Inf", false},
		{"inf", false},
		{"+Inf", false},
		{"Infinity", false},
		{"1e400", false},
		{"1_0", false},
		{"0x1p4", false},
		{"-0x10", false},
		{"0x10", true},
		{"0X0", false},
		{"0o7", true},
		{"0b101", true},
		{"1e3", true},
		{"2E-1", true},
		{".5", true},
		{"5.", true},
		{"+2", true},
		{"1e-400", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPositiveNumber(tt.in), tt.in)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{" 8.5 ", 8.5, true},
		{"0x10", 16, true},
		{"0b11", 3, true},
		{"-3", -3, true},
		{"0xffffffffffffffffff", 4722366482869645213695, true},
		{"1_000", 0, false},
		{"Infinity", 0, false},
		{"12abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1, tt.in)
		}
	}
}

func TestNew_UsesJSONNamesAndCustomTags(t *testing.T) {
	type payload struct {
		Email string `json:"requester_email" check:"notblank,simple_email"`
		Hours string `json:"duration_hours" check:"positive_number"`
	}

	v := New("check")

	err := v.Struct(payload{Email: "  ", Hours: "2"})
	require.Error(t, err)

	fieldErrors := FieldErrors(err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "requester_email", fieldErrors[0].Field)
	assert.Equal(t, "is required", fieldErrors[0].Error)

	err = v.Struct(payload{Email: "ana@valeshop.com.br", Hours: "-1"})
	require.Error(t, err)

	fieldErrors = FieldErrors(err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "duration_hours", fieldErrors[0].Field)
	assert.Equal(t, "must be a number greater than 0", fieldErrors[0].Error)

	assert.NoError(t, v.Struct(payload{Email: "ana@valeshop.com.br", Hours: "1"}))
}

func TestFieldErrors_Custom(t *testing.T) {
	err := CustomValidationErrors{{Field: "application", Message: "unknown"}}

	fieldErrors := FieldErrors(err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "application", fieldErrors[0].Field)
	assert.Equal(t, "unknown", fieldErrors[0].Error)
}
