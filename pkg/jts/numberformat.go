package jts

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber renders v using a decimal-pattern format such as "#.##",
// "0.###" or "#,##0.0#". An empty pattern renders plainly; a pattern that
// cannot be parsed falls back to plain rendering.
func formatNumber(v float64, pattern string) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if pattern == "" {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	spec, ok := parseNumberPattern(pattern)
	if !ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return spec.format(v)
}

type numberPattern struct {
	minInt   int
	minFrac  int
	maxFrac  int
	grouping bool
}

func parseNumberPattern(pattern string) (numberPattern, bool) {
	if strings.Count(pattern, ".") > 1 {
		return numberPattern{}, false
	}
	intPart, fracPart, _ := strings.Cut(pattern, ".")
	for _, r := range intPart {
		if r != '#' && r != '0' && r != ',' {
			return numberPattern{}, false
		}
	}
	for _, r := range fracPart {
		if r != '#' && r != '0' {
			return numberPattern{}, false
		}
	}
	spec := numberPattern{
		minInt:   strings.Count(intPart, "0"),
		minFrac:  strings.Count(fracPart, "0"),
		maxFrac:  len(fracPart),
		grouping: strings.Contains(intPart, ","),
	}
	return spec, true
}

func (p numberPattern) format(v float64) string {
	s := strconv.FormatFloat(v, 'f', p.maxFrac, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intDigits, frac, _ := strings.Cut(s, ".")

	// Trim optional trailing fraction digits down to the required minimum.
	for len(frac) > p.minFrac && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}

	for len(intDigits) < p.minInt {
		intDigits = "0" + intDigits
	}
	if p.grouping {
		intDigits = groupThousands(intDigits)
	}

	out := intDigits
	if frac != "" {
		out += "." + frac
	}
	if out == "" || out == "." {
		out = "0"
	}
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
