package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.co",
		"a+b@test.io",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"user@",
		"user@domain",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-10-01")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())

	_, ok = IsValidDate("01-10-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-40")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
}

func TestIsValidYear(t *testing.T) {
	assert.True(t, IsValidYear(2020))
	assert.True(t, IsValidYear(2030))
	assert.False(t, IsValidYear(2019))
	assert.False(t, IsValidYear(2031))
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"draft", "approved", "paid", "cancelled"}
	assert.True(t, IsInSlice("draft", statuses))
	assert.False(t, IsInSlice("archived", statuses))
	assert.False(t, IsInSlice("draft", nil))
}
