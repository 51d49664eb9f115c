package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"77 123 45 67":   "771234567",
		"77-123-45-67":   "771234567",
		"+77123 4567":    "771234567",
		"770000001":      "770000001",
		" +221 77\t000 ": "22177000",
		"":               "",
		"+":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), "input %q", in)
	}
}

func TestNormalizePhone_OnlyLeadingPlusStripped(t *testing.T) {
	assert.Equal(t, "77+1", NormalizePhone("+77+1"))
}
