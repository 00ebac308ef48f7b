package nfo

import (
	"regexp"
	"strconv"
	"strings"
)

type runtimeForm struct {
	re      *regexp.Regexp
	minutes func(m []string) int
}

// runtimeForms are tried in order, the first matching form wins
var runtimeForms = []runtimeForm{
	{
		re:      regexp.MustCompile(`(?i)^(\d+)\s*(?:m|min|mins|minutes)?$`),
		minutes: func(m []string) int { return atoi(m[1]) },
	},
	{
		re:      regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}))?$`),
		minutes: func(m []string) int { return atoi(m[1])*60 + atoi(m[2]) },
	},
	{
		re:      regexp.MustCompile(`(?i)^(\d+)\s*h\s*(?:(\d{1,2})\s*(?:m|min)?\s*(?:\d{1,2}\s*s)?)?$`),
		minutes: func(m []string) int { return atoi(m[1])*60 + atoi(m[2]) },
	},
}

// ParseRuntime normalizes a runtime to minutes. It accepts bare minutes, H:MM[:SS] and HhMM[m[SSs]].
// Zero and unrecognized values are absent.
func ParseRuntime(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, form := range runtimeForms {
		m := form.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		minutes := form.minutes(m)
		if minutes <= 0 {
			return nil
		}
		return &minutes
	}

	return nil
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
