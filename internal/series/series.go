// Package series classifies the progression implied by an ordered list of
// cell values and extrapolates further terms. It backs drag-fill: the
// selected range is the observation, the filled cells are the continuation.
package series

import (
	"strconv"
	"strings"
	"unicode"
)

// Type identifies the progression class of an observed value sequence.
type Type string

const (
	// Constant repeats the observed values as a cycle.
	Constant Type = "constant"
	// Numeric is a digits-only arithmetic progression ("01","02",...).
	Numeric Type = "numeric"
	// Alphabetic is a single-letter progression ("X","Y","Z" wraps to "A").
	Alphabetic Type = "alphabetic"
	// Mixed is text with a trailing-run arithmetic counter ("icon-01",...).
	Mixed Type = "mixed"
)

// Info describes a detected series. It is ephemeral: computed on demand
// from a value sequence and discarded after continuation.
type Info struct {
	Type   Type
	Values []string
	Step   int
	// Prefix and Suffix surround the numeric token of a mixed series.
	Prefix string
	Suffix string
	// PadLength is the zero-padding width for numeric/mixed continuations,
	// taken from the last observed value.
	PadLength int
}

// Detect classifies values. Classes are tried in order — mixed, numeric,
// alphabetic — and anything that fits none of them is constant, continued
// as a repeating cycle.
func Detect(values []string) Info {
	switch len(values) {
	case 0:
		return Info{Type: Constant, Values: nil}
	case 1:
		return Info{Type: Constant, Values: values}
	}
	if info, ok := detectMixed(values); ok {
		return info
	}
	if info, ok := detectNumeric(values); ok {
		return info
	}
	if info, ok := detectAlphabetic(values); ok {
		return info
	}
	return Info{Type: Constant, Values: values}
}

// Continue returns the next count terms after the observed sequence.
func Continue(info Info, count int) []string {
	if count <= 0 {
		return nil
	}
	out := make([]string, count)
	switch info.Type {
	case Numeric, Mixed:
		last := 0
		if n := len(info.Values); n > 0 {
			if _, num, _, ok := splitLastDigitRun(info.Values[n-1]); ok {
				last, _ = strconv.Atoi(num)
			}
		}
		for k := 1; k <= count; k++ {
			next := last + info.Step*k
			if next < 0 {
				next = 0
			}
			out[k-1] = info.Prefix + padNumber(next, info.PadLength) + info.Suffix
		}
	case Alphabetic:
		n := len(info.Values)
		lastRune := []rune(info.Values[n-1])[0]
		upper := unicode.IsUpper(lastRune)
		base := 'a'
		if upper {
			base = 'A'
		}
		pos := int(unicode.ToLower(lastRune) - 'a')
		for k := 1; k <= count; k++ {
			next := ((pos+info.Step*k)%26 + 26) % 26
			out[k-1] = string(base + rune(next))
		}
	default:
		values := info.Values
		if len(values) == 0 {
			values = []string{""}
		}
		for k := 0; k < count; k++ {
			out[k] = values[k%len(values)]
		}
	}
	return out
}

// detectMixed matches values of the form prefix+digits+suffix where the
// digit run is the last one in the value, every value shares the same
// prefix and suffix, and the numeric parts advance by a constant step.
// Digits-only sequences are excluded here so they classify as numeric.
func detectMixed(values []string) (Info, bool) {
	prefix, suffix := "", ""
	nums := make([]int, len(values))
	pad := 0
	hasText := false
	for i, v := range values {
		p, num, s, ok := splitLastDigitRun(v)
		if !ok {
			return Info{}, false
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return Info{}, false
		}
		if i == 0 {
			prefix, suffix = p, s
		} else if p != prefix || s != suffix {
			return Info{}, false
		}
		if p != "" || s != "" {
			hasText = true
		}
		nums[i] = n
		pad = len(num)
	}
	if !hasText {
		return Info{}, false
	}
	step, ok := constantStep(nums)
	if !ok {
		return Info{}, false
	}
	return Info{Type: Mixed, Values: values, Step: step, Prefix: prefix, Suffix: suffix, PadLength: pad}, true
}

// detectNumeric matches digits-only values advancing by a constant step.
// Padding width follows the last observed value, so "01","02" continues
// with its leading zero while "9","10" does not grow one.
func detectNumeric(values []string) (Info, bool) {
	nums := make([]int, len(values))
	for i, v := range values {
		if v == "" || strings.IndexFunc(v, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			return Info{}, false
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Info{}, false
		}
		nums[i] = n
	}
	step, ok := constantStep(nums)
	if !ok {
		return Info{}, false
	}
	return Info{Type: Numeric, Values: values, Step: step, PadLength: len(values[len(values)-1])}, true
}

// detectAlphabetic matches single-letter values whose character codes
// advance by a constant step. Continuation wraps within the alphabet and
// keeps the case of the last observed letter.
func detectAlphabetic(values []string) (Info, bool) {
	codes := make([]int, len(values))
	for i, v := range values {
		rs := []rune(v)
		if len(rs) != 1 || !unicode.IsLetter(rs[0]) || rs[0] > unicode.MaxASCII {
			return Info{}, false
		}
		codes[i] = int(unicode.ToLower(rs[0]))
	}
	step, ok := constantStep(codes)
	if !ok {
		return Info{}, false
	}
	return Info{Type: Alphabetic, Values: values, Step: step}, true
}

// constantStep reports the shared difference between successive terms.
func constantStep(nums []int) (int, bool) {
	step := nums[1] - nums[0]
	for i := 2; i < len(nums); i++ {
		if nums[i]-nums[i-1] != step {
			return 0, false
		}
	}
	return step, true
}

// splitLastDigitRun splits v around its final run of digits. ok is false
// when v contains no digit.
func splitLastDigitRun(v string) (prefix, digits, suffix string, ok bool) {
	end := -1
	for i := len(v) - 1; i >= 0; i-- {
		if v[i] >= '0' && v[i] <= '9' {
			end = i + 1
			break
		}
	}
	if end < 0 {
		return "", "", "", false
	}
	start := end
	for start > 0 && v[start-1] >= '0' && v[start-1] <= '9' {
		start--
	}
	return v[:start], v[start:end], v[end:], true
}

// padNumber formats n zero-padded to at least width digits.
func padNumber(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
