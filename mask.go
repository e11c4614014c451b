package quill

import (
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

// MaskType names a masking strategy referenced from a log.mask tag.
type MaskType string

const (
	MaskSSN         MaskType = "ssn"         // 123-45-6789 -> ***-**-6789
	MaskEmail       MaskType = "email"       // alice@example.com -> a***@example.com
	MaskPhone       MaskType = "phone"       // (555) 123-4567 -> (***) ***-4567
	MaskCard        MaskType = "card"        // 4111111111111111 -> ************1111
	MaskIP          MaskType = "ip"          // 192.168.1.100 -> 192.168.xxx.xxx
	MaskFingerprint MaskType = "fingerprint" // secret -> fp:a1b2c3d4e5f6
)

// Masker produces the redacted textual form of a field's value.
// The result is emitted quoted in place of the real value; the real
// value is never traversed or formatted.
type Masker interface {
	Mask(value string) string
}

// ssnMasker keeps the last four digits of a Social Security Number.
type ssnMasker struct{}

// SSNMasker returns a masker for Social Security Numbers.
func SSNMasker() Masker {
	return ssnMasker{}
}

func (ssnMasker) Mask(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return strings.Repeat("*", len(value))
	}
	return "***-**-" + digits[len(digits)-4:]
}

// emailMasker keeps the first character of the local part and the
// whole domain.
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
func EmailMasker() Masker {
	return emailMasker{}
}

func (emailMasker) Mask(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return strings.Repeat("*", len(value))
	}
	return value[:1] + "***" + value[at:]
}

// phoneMasker keeps the last four digits of a phone number.
type phoneMasker struct{}

// PhoneMasker returns a masker for phone numbers.
func PhoneMasker() Masker {
	return phoneMasker{}
}

func (phoneMasker) Mask(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return strings.Repeat("*", len(value))
	}
	last4 := digits[len(digits)-4:]
	switch {
	case strings.HasPrefix(value, "(") && len(digits) >= 10:
		return "(***) ***-" + last4
	case len(digits) >= 10:
		return "***-***-" + last4
	default:
		return "***-" + last4
	}
}

// cardMasker keeps the last four digits of a card number, preserving
// group separators.
type cardMasker struct{}

// CardMasker returns a masker for payment card numbers.
func CardMasker() Masker {
	return cardMasker{}
}

func (cardMasker) Mask(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return strings.Repeat("*", len(value))
	}
	last4 := digits[len(digits)-4:]

	sep := ""
	switch {
	case strings.Contains(value, " "):
		sep = " "
	case strings.Contains(value, "-"):
		sep = "-"
	}
	if sep == "" {
		return strings.Repeat("*", len(digits)-4) + last4
	}

	groups := (len(digits) - 1) / 4 // masked groups of four
	masked := make([]string, 0, groups+1)
	for i := 0; i < groups; i++ {
		masked = append(masked, "****")
	}
	return strings.Join(masked, sep) + sep + last4
}

// ipMasker keeps the network half of an IPv4 address. Anything else,
// IPv6 included, is masked entirely.
type ipMasker struct{}

// IPMasker returns a masker for IP addresses.
func IPMasker() Masker {
	return ipMasker{}
}

func (ipMasker) Mask(value string) string {
	if parts := strings.Split(value, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}
	return strings.Repeat("*", len(value))
}

// fingerprintMasker replaces a value with a short deterministic
// digest, so redacted log lines stay correlatable: the same input
// always yields the same fingerprint.
type fingerprintMasker struct{}

// FingerprintMasker returns a masker producing a fp:<12 hex> digest of
// the value. Deterministic; do not use for values that must stay
// uncorrelatable.
func FingerprintMasker() Masker {
	return fingerprintMasker{}
}

func (fingerprintMasker) Mask(value string) string {
	sum := blake2b.Sum256([]byte(value))
	return "fp:" + hex.EncodeToString(sum[:6])
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// builtinMaskers returns the default masking strategy registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskSSN:         SSNMasker(),
		MaskEmail:       EmailMasker(),
		MaskPhone:       PhoneMasker(),
		MaskCard:        CardMasker(),
		MaskIP:          IPMasker(),
		MaskFingerprint: FingerprintMasker(),
	}
}
