package rules

import (
	"strings"
	"time"

	"github.com/goliatone/go-formbind/internal/coerce"
	"golang.org/x/text/language"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate converts value to a time. It accepts time.Time, *time.Time,
// ISO 8601 strings and numbers holding unix milliseconds. Strings without a
// zone are read in local time.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	}
	if s, ok := coerce.String(value); ok {
		s = strings.TrimSpace(s)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	if n, ok, _ := coerce.Number(value); ok {
		return time.UnixMilli(int64(n)), true
	}
	return time.Time{}, false
}

// ShortDateLayout returns the numeric short date layout for a locale.
func ShortDateLayout(tag language.Tag) string {
	base, _ := tag.Base()
	region, _ := tag.Region()
	switch base.String() {
	case "en":
		switch region.String() {
		case "US", "PH":
			return "01/02/2006"
		case "CA", "ZA":
			return "2006-01-02"
		default:
			return "02/01/2006"
		}
	case "fr", "es", "it", "pt", "el", "vi":
		if base.String() == "fr" && region.String() == "CA" {
			return "2006-01-02"
		}
		return "02/01/2006"
	case "de", "ru", "pl", "cs", "fi", "nb", "tr", "uk", "ro":
		return "02.01.2006"
	case "nl":
		return "02-01-2006"
	case "sv", "lt":
		return "2006-01-02"
	case "ja", "zh":
		return "2006/01/02"
	case "ko", "hu":
		return "2006. 01. 02."
	default:
		return "01/02/2006"
	}
}
