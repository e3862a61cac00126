package cnpj

import (
	"strings"
	"testing"
)

func TestValid_KnownGood(t *testing.T) {
	valid := []string{
		"11222333000181",
		"11444777000161",
		"11.222.333/0001-81", // punctuation is stripped before checking
	}

	for _, id := range valid {
		if !Valid(id) {
			t.Errorf("Valid(%q) = false, want true", id)
		}
	}
}

func TestValid_ChecksumSensitivity(t *testing.T) {
	const id = "11222333000181"

	// Flipping any single digit must break the checksum.
	for i := 0; i < len(id); i++ {
		flipped := []byte(id)
		flipped[i] = byte('0' + (int(id[i]-'0')+1)%10)

		if Valid(string(flipped)) {
			t.Errorf("Valid(%q) = true after flipping digit %d, want false", flipped, i)
		}
	}
}

func TestValid_RepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		id := strings.Repeat(string(d), 14)
		if Valid(id) {
			t.Errorf("Valid(%q) = true, want false", id)
		}
	}
}

func TestValid_WrongLength(t *testing.T) {
	cases := []string{"", "1122233300018", "112223330001811", "abc"}
	for _, id := range cases {
		if Valid(id) {
			t.Errorf("Valid(%q) = true, want false", id)
		}
	}
}

func TestValid_BadCheckDigits(t *testing.T) {
	if Valid("11222333000182") {
		t.Error("Valid accepted a wrong second check digit")
	}
	if Valid("11222333000171") {
		t.Error("Valid accepted a wrong first check digit")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"11222333000181", "11.222.333/0001-81"},
		{"11.222.333/0001-81", "11.222.333/0001-81"},
		{"11222333000182", "11.222.333/0001-82"}, // no validation gating
		{"1122233", "1122233"},                   // too short: digits only
	}

	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("11.222.333/0001-81"); got != "11222333000181" {
		t.Errorf("Normalize = %q, want digits only", got)
	}
}

func TestSectorFromCNAE(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"6920601", "Atividades jurídicas, contábeis e consultorias"},
		{"4711301", "Comércio varejista"},
		{"9999999", DefaultSector},
		{"7", DefaultSector},
	}

	for _, tc := range cases {
		if got := SectorFromCNAE(tc.code); got != tc.want {
			t.Errorf("SectorFromCNAE(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
