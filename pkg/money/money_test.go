package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "licensing/pkg/domain-errors"
)

func TestReleaseFeeSumIsExact(t *testing.T) {
	fine := FromUnits(20)
	releaseFee := FromUnits(15)
	assert.Equal(t, FromUnits(35), releaseFee.Add(fine))
	assert.Equal(t, "35.00", releaseFee.Add(fine).String())
}

func TestParse(t *testing.T) {
	valid := []struct {
		raw  string
		want Amount
	}{
		{"35", 3500},
		{"12.5", 1250},
		{"20.50", 2050},
		{"0.10", 10},
		{"-3", -300},
		{" 7.05 ", 705},
		{"1000000000000", FromUnits(MaxUnits)},
	}
	for _, tc := range valid {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := Parse(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	invalid := []struct {
		raw     string
		message string
	}{
		{"", "amount is required"},
		{"abc", "invalid amount"},
		{"NaN", "invalid amount"},
		{"Inf", "invalid amount"},
		{"1.234", "amount has more than two decimals"},
		{"1e-3", "invalid amount"},
		{"2E2", "invalid amount"},
		{"1e17", "invalid amount"},
		{"+5", "invalid amount"},
		{".5", "invalid amount"},
		{"5.", "invalid amount"},
		{"1000000000000.01", "amount is out of range"},
		{"95000000000000000", "amount is out of range"},
		{"-95000000000000000", "amount is out of range"},
		{"99999999999999999999", "amount is out of range"},
	}
	for _, tc := range invalid {
		t.Run("rejects "+tc.raw, func(t *testing.T) {
			got, err := Parse(tc.raw)
			require.Error(t, err)
			assert.Zero(t, got)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestJSON(t *testing.T) {
	var payload struct {
		Fine Amount `json:"fine"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"fine": 20.25}`), &payload))
	assert.Equal(t, Amount(2025), payload.Fine)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fine": 20.25}`, string(out))

	t.Run("exponent forms are rejected", func(t *testing.T) {
		for _, body := range []string{`{"fine": 1e-3}`, `{"fine": 1e17}`, `{"fine": "2.5E1"}`} {
			var p struct {
				Fine Amount `json:"fine"`
			}
			err := json.Unmarshal([]byte(body), &p)
			require.Error(t, err, body)
			assert.Zero(t, p.Fine)
		}
	})
}

func TestNegativeString(t *testing.T) {
	assert.Equal(t, "-1.05", Amount(-105).String())
	assert.True(t, Amount(-1).IsNegative())
}
