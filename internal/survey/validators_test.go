package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		in    string
		want  bool
	}{
		{"phone_international", IsValidPhone, "+998901234567", true},
		{"phone_without_plus", IsValidPhone, "998901234567", true},
		{"phone_ten_digits", IsValidPhone, "9012345678", true},
		{"phone_too_short", IsValidPhone, "123", false},
		{"phone_too_long", IsValidPhone, "+1234567890123456", false},
		{"phone_with_spaces", IsValidPhone, "+998 90 123 45 67", false},
		{"email_short_tld", IsValidEmail, "a@b.co", true},
		{"email_subdomain", IsValidEmail, "vali.aliyev@mail.example.uz", true},
		{"email_missing_at", IsValidEmail, "not-an-email", false},
		{"email_one_letter_tld", IsValidEmail, "a@b.c", false},
		{"email_no_dot_after_at", IsValidEmail, "a@localhost", false},
		{"date_valid", IsValidDate, "2020-02-29", true},
		{"date_invalid_day", IsValidDate, "2020-02-30", false},
		{"date_not_leap", IsValidDate, "2019-02-29", false},
		{"date_wrong_format", IsValidDate, "01.02.2020", false},
		{"date_single_digit_month", IsValidDate, "2020-1-05", false},
		{"date_trailing_text", IsValidDate, "2020-01-05x", false},
		{"int_zero", IsPositiveInteger, "0", false},
		{"int_seven", IsPositiveInteger, "7", true},
		{"int_negative", IsPositiveInteger, "-3", false},
		{"int_text", IsPositiveInteger, "seven", false},
		{"int_fraction", IsPositiveInteger, "7.5", false},
		{"int_max_int32", IsPositiveInteger, "2147483647", true},
		{"int_above_int32", IsPositiveInteger, "2147483648", false},
		{"int_overflow_age", IsPositiveInteger, "3000000000", false},
		{"non_empty_spaces", IsNonEmpty, "   ", false},
		{"non_empty_text", IsNonEmpty, " Tashkent ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2015-04-01")
	assert.True(t, ok)
	assert.Equal(t, 2015, d.Year())
	assert.Equal(t, 4, int(d.Month()))
	assert.Equal(t, 1, d.Day())
}
