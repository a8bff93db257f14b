package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty(" abc "))
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"caissier@entreprise.sn", "user.name+1@domain.co", "a@b.cd"} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"771234567", true},
		{"+221771234567", true},
		{"77-123-45-67", true},
		{"77 123 45 67", true},
		{"12345678", false},
		{"+2217712345678901", false},
		{"77abc4567", false},
		{"++221771234567", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), date)

	for _, s := range []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod("2024-01"))
	assert.True(t, IsValidPeriod("1999-12"))
	for _, s := range []string{"2024-13", "2024-1", "janvier", "2024-01-01", ""} {
		assert.False(t, IsValidPeriod(s), s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	got, ok := IsValidDateTime("2025-01-15T08:05:00Z")
	require.True(t, ok)
	assert.Equal(t, 8, got.Hour())

	got, ok = IsValidDateTime("2025-01-15T08:05:00.250+01:00")
	require.True(t, ok)
	assert.Equal(t, 7, got.UTC().Hour())

	_, ok = IsValidDateTime("2025-01-15 08:05")
	assert.False(t, ok)
}

func TestIsPositive(t *testing.T) {
	pos := decimal.NewFromInt(15000)
	zero := decimal.Zero
	neg := decimal.NewFromInt(-1)

	assert.True(t, IsPositive(&pos))
	assert.False(t, IsPositive(&zero))
	assert.False(t, IsPositive(&neg))
	assert.False(t, IsPositive(nil))
}

func TestHasAtMostTwoDecimals(t *testing.T) {
	assert.True(t, HasAtMostTwoDecimals(decimal.RequireFromString("100.25")))
	assert.True(t, HasAtMostTwoDecimals(decimal.NewFromInt(150000)))
	assert.False(t, HasAtMostTwoDecimals(decimal.RequireFromString("100.255")))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("email", "invalid")
	errs.Add("phone", "required")
	errs.Add("email", "already used")

	assert.Equal(t, "email: invalid; phone: required; email: already used", errs.Error())
	assert.Equal(t, map[string]string{"email": "invalid", "phone": "required"}, errs.ToMap())

	var target ValidationErrors
	require.True(t, errors.As(errs.Err(), &target))
	assert.Len(t, target, 3)
}
