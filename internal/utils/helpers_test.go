package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"2000", 2000, true},
		{"12,500", 12500, true},
		{"1,234,567", 1234567, true},
		{" 40000 ", 40000, true},
		{"0", 0, true},
		{"", 0, false},
		{",", 0, false},
		{"-5", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestAmountPtr(t *testing.T) {
	assert.Nil(t, AmountPtr(""))
	if p := AmountPtr("3,500"); assert.NotNil(t, p) {
		assert.Equal(t, int64(3500), *p)
	}
}

func TestCleanCounterparty(t *testing.T) {
	assert.Equal(t, "Jane Smith", CleanCounterparty("  Jane   Smith \n"))
	assert.Equal(t, "", CleanCounterparty("   "))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("payment of 500 rwf for airtime", "cash power", "airtime"))
	assert.False(t, Contains("payment of 500 rwf", "cash power", "airtime"))
	assert.False(t, Contains("anything"))
}
