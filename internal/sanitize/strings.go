package sanitize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

var (
	reScriptScheme = regexp.MustCompile(`(?i)javascript:`)
	reEventHandler = regexp.MustCompile(`(?i)on\w+=`)
	rePhone        = regexp.MustCompile(`^\+?[\d\s\-().]{7,20}$`)
	reDate         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// CleanString strips angle brackets, javascript: schemes and inline event
// handler patterns, collapses surrounding whitespace. It never rejects.
func CleanString(s string) string {
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = reScriptScheme.ReplaceAllString(s, "")
	s = reEventHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func cleanPhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", nil
	}
	if !rePhone.MatchString(phone) {
		return "", domain.Validation("invalid phone number")
	}
	return phone, nil
}

// cleanDate validates YYYY-MM-DD shape and real-calendar validity. Empty is
// fine; a present malformed value rejects.
func cleanDate(raw, field string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if !reDate.MatchString(s) {
		return "", domain.Validation(field + " must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", domain.Validation(field + " is not a valid date")
	}
	return s, nil
}

// checkOrder enforces chronology only when both ends are present. With strict
// set, equal dates also reject (hotel nights, insurance periods).
func checkOrder(start, end string, strict bool, msg string) error {
	if start == "" || end == "" {
		return nil
	}
	if end < start || (strict && end == start) {
		return domain.Validation(msg)
	}
	return nil
}

// asCount coerces a loose numeric to an int in [1, 100]; anything else is
// dropped to zero rather than rejected.
func asCount(v any) int {
	n, ok := asInt(v)
	if !ok || n < 1 || n > 100 {
		return 0
	}
	return n
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1" || s == "yes"
	case float64:
		return t != 0
	default:
		return false
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// cleanCounts coerces a raw traveler breakdown. Counts clamp to [0, 20]; age
// entries outside their documented ranges are dropped. A nil input stays nil.
func cleanCounts(raw *models.RawCounts) *models.TravelerCounts {
	if raw == nil {
		return nil
	}

	out := &models.TravelerCounts{}
	if n, ok := asInt(raw.Adults); ok {
		out.Adults = clamp(n, 0, 20)
	}
	if n, ok := asInt(raw.Children); ok {
		out.Children = clamp(n, 0, 20)
	}
	if n, ok := asInt(raw.Infants); ok {
		out.Infants = clamp(n, 0, 20)
	}
	if n, ok := asInt(raw.Seniors); ok {
		out.Seniors = clamp(n, 0, 20)
	}
	out.ChildAges = keepAgesInRange(raw.ChildAges, 2, 17)
	out.InfantAges = keepAgesInRange(raw.InfantAges, 0, 23)
	return out
}

func keepAgesInRange(raw []any, lo, hi int) []int {
	var out []int
	for _, v := range raw {
		n, ok := asInt(v)
		if !ok || n < lo || n > hi {
			continue
		}
		out = append(out, n)
	}
	return out
}
