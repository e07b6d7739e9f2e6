package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePlaceholders(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM opportunities WHERE id = ?", "SELECT * FROM opportunities WHERE id = $1"},
		{
			"INSERT INTO opportunities (supplier, product) VALUES (?, ?) RETURNING id",
			"INSERT INTO opportunities (supplier, product) VALUES ($1, $2) RETURNING id",
		},
		{
			"UPDATE opportunities SET supplier = ?, product = ?, notes = ? WHERE id = ?",
			"UPDATE opportunities SET supplier = $1, product = $2, notes = $3 WHERE id = $4",
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rewritePlaceholders(tc.in))
	}
}

func TestRewritePlaceholdersDoubleDigit(t *testing.T) {
	in := "VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	got := rewritePlaceholders(in)
	assert.Contains(t, got, "$10")
	assert.Contains(t, got, "$12")
	assert.NotContains(t, got, "?")
}
