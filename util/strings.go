package util

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gebv/bcpay/provider"
)

const (
	numberWidth = 8
	maskChar    = "X"
)

func ConvertToBool(value string) bool {
	return strings.ToLower(value) == "true"
}

// GenerateTransactionNumber prefix + number left padded with zeros up to 8 chars.
func GenerateTransactionNumber(prefix, txnNumber string) string {
	return prefix + padLeft(txnNumber, numberWidth, '0')
}

func GenerateReceiptNumber(prefix, paymentID string) string {
	return prefix + padLeft(paymentID, numberWidth, '0')
}

// Mask replaces val with X keeping the last preserve chars.
// preserve 0 masks the whole value.
func Mask(val string, preserve int) string {
	if val == "" {
		return val
	}
	r := []rune(val)
	if preserve <= 0 {
		return strings.Repeat(maskChar, len(r))
	}
	if preserve >= len(r) {
		return val
	}
	return strings.Repeat(maskChar, len(r)-preserve) + string(r[len(r)-preserve:])
}

// PaySubjectName subject to publish payment events of the corp type to.
func PaySubjectName(corpType provider.CorpType, subjectFormat string) string {
	product := "filing"
	if corpType == provider.NRO {
		product = "name-request"
	}
	return strings.ReplaceAll(subjectFormat, "{product}", product)
}

// ParseURLParams parses a query string with or without the leading "?".
// For a repeated key the last value wins.
func ParseURLParams(params string) map[string]string {
	out := map[string]string{}
	params = strings.TrimPrefix(params, "?")
	if params == "" {
		return out
	}
	values, err := url.ParseQuery(params)
	if err != nil && len(values) == 0 {
		return out
	}
	for k, vs := range values {
		if k == "" || len(vs) == 0 || vs[len(vs)-1] == "" {
			continue
		}
		out[k] = vs[len(vs)-1]
	}
	return out
}

// IsValidRedirectURL a valid url ending with "*" matches any url with that prefix.
func IsValidRedirectURL(link string, validURLs []string) bool {
	for _, valid := range validURLs {
		if strings.HasSuffix(valid, "*") {
			if strings.HasPrefix(link, strings.TrimSuffix(valid, "*")) {
				return true
			}
			continue
		}
		if valid == link {
			return true
		}
	}
	return false
}

// StrByPath returns the value under the "/" separated path of the decoded JSON payload.
func StrByPath(payload map[string]interface{}, path string) (string, bool) {
	if payload == nil {
		return "", false
	}
	var cur interface{} = payload
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[part]
			if !ok {
				return "", false
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return "", false
			}
			cur = node[i]
		default:
			return "", false
		}
	}
	if cur == nil {
		return "", false
	}
	return fmt.Sprint(cur), true
}

func padLeft(s string, width int, pad rune) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}
