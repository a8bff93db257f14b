package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout   = "2006-01-02"
	periodLayout = "2006-01"
)

type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects field errors. It maps to a 422 response with one
// entry per field.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keeps the first message reported for each field.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		if _, seen := result[err.Field]; !seen {
			result[err.Field] = err.Message
		}
	}
	return result
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when nothing was collected, so callers can write
// `return errs.Err()` without returning a typed nil.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhoneNumber accepts an optional leading + and 9 to 15 digits.
// Spaces and dashes are ignored.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return phoneRegex.MatchString(phone)
}

// IsValidDate parses a calendar day as YYYY-MM-DD.
func IsValidDate(s string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, s)
	return date, err == nil
}

// IsValidPeriod checks a YYYY-MM payroll period label.
func IsValidPeriod(period string) bool {
	_, err := time.Parse(periodLayout, period)
	return err == nil
}

// IsValidDateTime parses an RFC 3339 timestamp, fractional seconds allowed.
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	return t, err == nil
}

func IsPositive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

// HasAtMostTwoDecimals rejects amounts with sub-cent precision.
func HasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
