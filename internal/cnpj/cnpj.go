// Package cnpj validates and formats Brazilian company registry numbers.
package cnpj

import "strings"

var (
	weightsFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weightsSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize strips every non-digit character.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether s is a structurally valid CNPJ: 14 digits, not a
// repeated single digit, and a matching two-stage mod-11 checksum.
func Valid(s string) bool {
	clean := Normalize(s)
	if len(clean) != 14 {
		return false
	}
	if allSameDigit(clean) {
		return false
	}

	base := clean[:12]
	d1 := checkDigit(base, weightsFirst)
	d2 := checkDigit(base+string(rune('0'+d1)), weightsSecond)

	return int(clean[12]-'0') == d1 && int(clean[13]-'0') == d2
}

// Format renders the first 14 digits as DD.DDD.DDD/DDDD-DD. Input is not
// validated; strings without 14 digits are returned with digits stripped.
func Format(s string) string {
	clean := Normalize(s)
	if len(clean) < 14 {
		return clean
	}
	clean = clean[:14]
	return clean[0:2] + "." + clean[2:5] + "." + clean[5:8] + "/" + clean[8:12] + "-" + clean[12:14]
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i := range digits {
		sum += int(digits[i]-'0') * weights[i]
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
