package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebv/bcpay/provider"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestCalendar_NearestBusinessDay(t *testing.T) {
	c, err := NewCalendar("America/Vancouver", []string{"2019-07-01", " 2019-12-25"})
	require.NoError(t, err)

	tests := []struct {
		name         string
		in           time.Time
		includeToday bool
		want         time.Time
	}{
		{name: "business day", in: day(2019, 7, 3), includeToday: true, want: day(2019, 7, 3)},
		{name: "exclude today", in: day(2019, 7, 3), includeToday: false, want: day(2019, 7, 4)},
		{name: "holiday monday", in: day(2019, 7, 1), includeToday: true, want: day(2019, 7, 2)},
		{name: "saturday", in: day(2019, 7, 6), includeToday: true, want: day(2019, 7, 8)},
		{name: "friday before weekend", in: day(2019, 7, 5), includeToday: false, want: day(2019, 7, 8)},
		{name: "christmas", in: day(2019, 12, 25), includeToday: true, want: day(2019, 12, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.NearestBusinessDay(tt.in, tt.includeToday))
		})
	}
}

func TestNewCalendar_errors(t *testing.T) {
	_, err := NewCalendar("Nowhere/Never", nil)
	assert.Error(t, err)
	_, err = NewCalendar("UTC", []string{"25/12/2019"})
	assert.Error(t, err)
}

func TestCalendar_LocalFormatted(t *testing.T) {
	c, err := NewCalendar("America/Vancouver", nil)
	require.NoError(t, err)
	utc := time.Date(2019, 7, 3, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, "2019-07-02 22:00:00", c.LocalFormattedDateTime(utc, ""))
	assert.Equal(t, "07-02-2019", c.LocalFormattedDate(utc))
	assert.Equal(t, "2019/07/02", c.LocalFormattedDateTime(utc, "2006/01/02"))
}

func TestWeekStartAndEnd(t *testing.T) {
	// среда 2019-07-03
	start, end := WeekStartAndEnd(day(2019, 7, 3), 0)
	assert.Equal(t, day(2019, 6, 30), start)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, day(2019, 7, 6), end)
	assert.Equal(t, time.Saturday, end.Weekday())

	start, end = WeekStartAndEnd(day(2019, 7, 3), 1)
	assert.Equal(t, day(2019, 6, 23), start)
	assert.Equal(t, day(2019, 6, 29), end)
}

func TestFirstAndLastDatesOfMonth(t *testing.T) {
	now := day(2019, 7, 3)
	start, end := FirstAndLastDatesOfMonth(now, time.February, 2020)
	assert.Equal(t, day(2020, 2, 1), start)
	assert.Equal(t, day(2020, 2, 29), end)

	start, end = FirstAndLastDatesOfMonth(now, time.December, 2019)
	assert.Equal(t, day(2019, 12, 1), start)
	assert.Equal(t, day(2019, 12, 31), end)
}

func TestPreviousMonthAndYear(t *testing.T) {
	m, y := PreviousMonthAndYear(day(2020, 1, 15))
	assert.Equal(t, time.December, m)
	assert.Equal(t, 2019, y)

	m, y = PreviousMonthAndYear(day(2020, 3, 31))
	assert.Equal(t, time.February, m)
	assert.Equal(t, 2020, y)
}

func TestPreviousAndNextDay(t *testing.T) {
	assert.Equal(t, day(2019, 2, 28), PreviousDay(day(2019, 3, 1)))
	assert.Equal(t, day(2020, 1, 1), NextDay(day(2019, 12, 31)))
}

func TestFiscalYear(t *testing.T) {
	assert.Equal(t, 2019, FiscalYear(day(2019, 3, 31)))
	assert.Equal(t, 2020, FiscalYear(day(2019, 4, 1)))
	assert.Equal(t, 2019, FiscalYear(day(2019, 1, 1)))
}

func TestGenerateNumbers(t *testing.T) {
	assert.Equal(t, "REG00001001", GenerateTransactionNumber("REG", "1001"))
	assert.Equal(t, "REG123456789", GenerateTransactionNumber("REG", "123456789"))
	assert.Equal(t, "RCPT00000042", GenerateReceiptNumber("RCPT", "42"))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask("", 4))
	assert.Equal(t, "XXXXXX", Mask("secret", 0))
	assert.Equal(t, "XXXXXXXX1234", Mask("567890121234", 4))
	assert.Equal(t, "abc", Mask("abc", 5))
}

func TestConvertToBool(t *testing.T) {
	assert.True(t, ConvertToBool("True"))
	assert.True(t, ConvertToBool("true"))
	assert.False(t, ConvertToBool("yes"))
	assert.False(t, ConvertToBool(""))
}

func TestPaySubjectName(t *testing.T) {
	assert.Equal(t, "entity.name-request.payment", PaySubjectName(provider.NRO, "entity.{product}.payment"))
	assert.Equal(t, "entity.filing.payment", PaySubjectName(provider.CP, "entity.{product}.payment"))
}

func TestParseURLParams(t *testing.T) {
	assert.Equal(t, map[string]string{"a": "1", "b": "two"}, ParseURLParams("?a=1&b=two"))
	assert.Equal(t, map[string]string{"a": "2"}, ParseURLParams("a=1&a=2&empty="))
	assert.Empty(t, ParseURLParams(""))
}

func TestIsValidRedirectURL(t *testing.T) {
	valid := []string{"https://www.bcregistry.ca/*", "http://localhost:8080/done"}
	assert.True(t, IsValidRedirectURL("https://www.bcregistry.ca/business/1", valid))
	assert.True(t, IsValidRedirectURL("http://localhost:8080/done", valid))
	assert.False(t, IsValidRedirectURL("http://localhost:8080/done/2", valid))
	assert.False(t, IsValidRedirectURL("https://evil.example", valid))
	assert.False(t, IsValidRedirectURL("https://www.bcregistry.ca/", nil))
}

func TestStrByPath(t *testing.T) {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"business": {"identifier": "CP0001234", "legalType": "CP"},
		"filing": {"header": {"name": "annualReport"}},
		"items": [{"id": 7}]
	}`), &payload))

	v, ok := StrByPath(payload, "business/identifier")
	assert.True(t, ok)
	assert.Equal(t, "CP0001234", v)

	v, ok = StrByPath(payload, "/filing/header/name")
	assert.True(t, ok)
	assert.Equal(t, "annualReport", v)

	v, ok = StrByPath(payload, "items/0/id")
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = StrByPath(payload, "business/missing")
	assert.False(t, ok)
	_, ok = StrByPath(payload, "items/5/id")
	assert.False(t, ok)
	_, ok = StrByPath(nil, "a")
	assert.False(t, ok)
}
