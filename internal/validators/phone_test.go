package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+79161234567", "+79161234567", true},
		{"+7 (916) 123-45-67", "+79161234567", true},
		{"89161234567", "+79161234567", true},
		{"79161234567", "+79161234567", true},
		{"9161234567", "", false},
		{"+7916123456", "", false},
		{"+1 916 123 4567", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
