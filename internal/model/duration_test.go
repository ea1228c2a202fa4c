package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationHours_KeepsTokenShape(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		isNumber bool
		text     string
	}{
		{name: "string", in: `"8"`, isNumber: false, text: "8"},
		{name: "number", in: `8`, isNumber: true, text: "8"},
		{name: "decimal", in: `8.5`, isNumber: true, text: "8.5"},
		{name: "padded string", in: `" 4 "`, isNumber: false, text: " 4 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DurationHours
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))

			assert.Equal(t, tt.isNumber, d.IsNumber())
			assert.Equal(t, tt.text, d.String())

			out, err := json.Marshal(d)
			require.NoError(t, err)
			assert.JSONEq(t, tt.in, string(out))
		})
	}
}

func TestDurationHours_Present(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`null`, false},
		{`""`, false},
		{`0`, false},
		{`0.0`, false},
		{`"0"`, true},
		{`" "`, true},
		{`-5`, true},
		{`"abc"`, true},
	}

	for _, tt := range tests {
		var d DurationHours
		require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
		assert.Equal(t, tt.want, d.Present(), tt.in)
	}

	assert.False(t, DurationHours{}.Present())
}

func TestDurationHours_RejectsOtherTypes(t *testing.T) {
	for _, in := range []string{`true`, `{}`, `[1]`} {
		var d DurationHours
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}
}

func TestDurationHours_Hours(t *testing.T) {
	h, err := NewDurationHours(" 2.5 ").Hours()
	require.NoError(t, err)
	assert.Equal(t, 2.5, h)

	h, err = NewDurationHours("0x10").Hours()
	require.NoError(t, err)
	assert.Equal(t, 16.0, h)

	for _, in := range []string{"abc", "Inf", "1_0"} {
		_, err = NewDurationHours(in).Hours()
		assert.Error(t, err, in)
	}
}

func TestDurationHours_AbsentMarshalsNull(t *testing.T) {
	out, err := json.Marshal(struct {
		D DurationHours `json:"d"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(out))
}
