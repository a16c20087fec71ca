package frame

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order when a date is stored as text.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	"01/02/2006",
	"1/2/06 15:04",
	"2-Jan-06",
	"2-Jan-2006",
}

var groupedNumber = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// IsMissing reports whether v is an absent cell: nil or a float NaN.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// NumberValue returns a stored number as int64 when it is whole and
// within range, and as float64 otherwise.
func NumberValue(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

func isSpecialFloatWord(s string) bool {
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "nan", "inf", "infinity":
		return true
	}
	return false
}

// ToFloat converts a numeric cell to float64. Numeric text is accepted;
// missing values and non-numeric text return ok == false.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		if math.IsNaN(float64(x)) {
			return 0, false
		}
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" || isSpecialFloatWord(s) {
			return 0, false
		}
		if groupedNumber.MatchString(s) {
			s = strings.ReplaceAll(s, ",", "")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// ToInt converts a cell to int64. Floats must be whole numbers.
func ToInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	if IsMissing(v) {
		return 0, fmt.Errorf("missing value")
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, fmt.Errorf("value %q is not numeric", fmt.Sprint(v))
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not a whole number", f)
	}
	return int64(f), nil
}

// ToTime converts a cell to a time. Text is parsed with layouts.
func ToTime(v any, layouts []string) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("value %q does not match any date layout", s)
	}
	if IsMissing(v) {
		return time.Time{}, fmt.Errorf("missing value")
	}
	return time.Time{}, fmt.Errorf("value of type %T is not a date", v)
}

// KeyOf returns a canonical grouping key for v so that equal cells of
// different storage types (1 and 1.0) share a key. All missing values
// share one key.
func KeyOf(v any) string {
	if IsMissing(v) {
		return "\x00missing"
	}
	switch x := v.(type) {
	case string:
		return "s:" + x
	case time.Time:
		return "t:" + x.UTC().Format(time.RFC3339Nano)
	case bool:
		return "b:" + strconv.FormatBool(x)
	}
	if f, ok := ToFloat(v); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// Format renders v for export. Missing values render empty.
func Format(v any) string {
	if IsMissing(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprint(v)
}
