package jts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeFormat is the moment-style pattern applied when a document
// format enables headers but names no time format.
const DefaultTimeFormat = "YYYY-MM-DDTHH:mm:ss.SSSZZ"

// isoLayout always carries milliseconds and renders UTC as Z.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func formatISO(t time.Time) string {
	return t.Format(isoLayout)
}

// formatTimestamp renders a timestamp for textual output. An empty format
// means ISO-8601; "X" and "x" mean epoch seconds and epoch milliseconds;
// anything else is interpreted as a moment-style token pattern.
func formatTimestamp(t time.Time, format string) string {
	switch format {
	case "":
		return formatISO(t)
	case "X":
		return strconv.FormatInt(t.UnixMilli()/1000, 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	default:
		return formatTokens(t, format)
	}
}

// formatTokens renders a moment-style pattern token by token. Tokens are
// matched longest first; [bracketed] runs pass through literally, as does
// any unrecognized character. Offset tokens follow the conventions of the
// original implementation's time library: Z renders +1000, ZZ renders
// +10:00.
func formatTokens(t time.Time, pattern string) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				sb.WriteString(pattern[i+1:])
				break
			}
			sb.WriteString(pattern[i+1 : i+end])
			i += end + 1
			continue
		}
		token, n := matchToken(pattern[i:])
		if n == 0 {
			sb.WriteByte(pattern[i])
			i++
			continue
		}
		sb.WriteString(renderToken(t, token))
		i += n
	}
	return sb.String()
}

// formatTokensOrder lists tokens longest first so greedy matching never
// splits a longer token into shorter ones.
var formatTokensOrder = []string{
	"YYYY", "MMMM", "DDDD", "dddd", "DDDo",
	"MMM", "DDD", "ddd", "SSS",
	"YY", "MM", "Do", "DD", "dd", "HH", "hh", "mm", "ss", "SS", "ZZ",
	"M", "D", "d", "H", "h", "m", "s", "S", "A", "a", "Z", "X", "x",
}

func matchToken(s string) (string, int) {
	for _, token := range formatTokensOrder {
		if strings.HasPrefix(s, token) {
			return token, len(token)
		}
	}
	return "", 0
}

func renderToken(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DDDD":
		return fmt.Sprintf("%03d", t.YearDay())
	case "DDDo":
		return ordinal(t.YearDay())
	case "DDD":
		return strconv.Itoa(t.YearDay())
	case "Do":
		return ordinal(t.Day())
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "dd":
		return t.Weekday().String()[:2]
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/1e6)
	case "SS":
		return fmt.Sprintf("%02d", t.Nanosecond()/1e7)
	case "S":
		return strconv.Itoa(t.Nanosecond() / 1e8)
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "ZZ":
		return offset(t, true)
	case "Z":
		return offset(t, false)
	case "X":
		return strconv.FormatInt(t.UnixMilli()/1000, 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	default:
		return token
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func offset(t time.Time, colon bool) string {
	_, secs := t.Zone()
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	h, m := secs/3600, secs%3600/60
	if colon {
		return fmt.Sprintf("%s%02d:%02d", sign, h, m)
	}
	return fmt.Sprintf("%s%02d%02d", sign, h, m)
}

// timestampLayouts are the accepted textual timestamp shapes, tried in
// order. CSV imports commonly carry the space-separated form.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
