package helpers

import (
	"net/url"
	"time"
)

// DisplayTimeLayout is the day-first layout used in display payloads
const DisplayTimeLayout = "02/01/2006 15:04"

// FormatDisplayTime formats t with DisplayTimeLayout
func FormatDisplayTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}

// TruncateRunes cuts s to at most n runes
func TruncateRunes(s string, n int) string {
	if n < 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// AvatarURL builds a generated avatar URL for a display name
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}
