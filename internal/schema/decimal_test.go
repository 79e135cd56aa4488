package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in string
		ok bool
	}{
		{in: "5.23", ok: true},
		{in: "0", ok: true},
		{in: "007", ok: true},
		{in: "5.", ok: true},
		{in: "1234567890.0001", ok: true},
		{in: "5.23.1", ok: false},
		{in: "-1", ok: false},
		{in: "+1", ok: false},
		{in: "", ok: false},
		{in: ".5", ok: false},
		{in: "1e3", ok: false},
		{in: "abc", ok: false},
		{in: " 1", ok: false},
		{in: "1 ", ok: false},
		{in: "1,5", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDecimalString(tt.in)
			if !tt.ok {
				require.Error(t, err)
				assert.Contains(t, err.Error(), DecimalPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DecimalString(tt.in), got)
		})
	}
}

func TestDecimalStringDecimal(t *testing.T) {
	t.Parallel()

	d, err := DecimalString("3.50").Decimal()
	require.NoError(t, err)
	assert.Equal(t, "3.5", d.String())

	d, err = DecimalString("5.").Decimal()
	require.NoError(t, err)
	assert.Equal(t, "5", d.String())

	_, err = DecimalString("-1").Decimal()
	require.Error(t, err)
}
