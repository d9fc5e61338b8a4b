package validators

import (
	"regexp"
	"strings"
)

// DefaultPhoneMinLength requires country, area and line digits.
const DefaultPhoneMinLength = 11

// maxPhoneLength is the E.164 ceiling.
const maxPhoneLength = 15

var (
	phoneCharsRE = regexp.MustCompile(`^\+?[0-9\s)(+-]+\s*$`)
	nonDigitRE   = regexp.MustCompile(`[^0-9]+`)
	callSignRE   = regexp.MustCompile(`(?i)^([a-z0-9]{2,3}[0-9][a-z0-9]{3})(-[0-9]{1,2})?\s*$`)
)

// PhoneNumber is a phone number split into its parts. Full holds only the
// digits; Pretty is a hyphenated rendering.
type PhoneNumber struct {
	Country string `json:"country"`
	Area    string `json:"area"`
	Line    string `json:"line"`
	Pretty  string `json:"pretty"`
	Full    string `json:"full"`
}

// CallSign is an amateur radio call sign with its optional SSID suffix
// (including the leading hyphen).
type CallSign struct {
	CallSign string `json:"callsign"`
	SSID     string `json:"ssid"`
}

// IsPhoneNo validates a phone number written with digits, spaces, '+',
// '-' and parentheses. At least minLen and at most 15 digits are required.
func IsPhoneNo(value string, minLen int) (*PhoneNumber, bool) {
	if !phoneCharsRE.MatchString(value) {
		return nil, false
	}

	digits := nonDigitRE.ReplaceAllString(value, "")
	if len(digits) < minLen || len(digits) > maxPhoneLength {
		return nil, false
	}

	phone := &PhoneNumber{Full: digits}

	switch {
	case len(digits) > 10:
		phone.Country = digits[:len(digits)-10]
		phone.Area = digits[len(digits)-10 : len(digits)-7]
		phone.Line = digits[len(digits)-7:]
		phone.Pretty = "+" + phone.Country + " " + phone.Area + "-" + hyphenateLine(phone.Line)
	case len(digits) == 10:
		phone.Area = digits[:3]
		phone.Line = digits[3:]
		phone.Pretty = phone.Area + "-" + hyphenateLine(phone.Line)
	case len(digits) >= 7:
		phone.Line = digits
		phone.Pretty = hyphenateLine(digits)
	default:
		phone.Line = digits
		phone.Pretty = digits
	}

	return phone, true
}

func hyphenateLine(line string) string {
	return line[:3] + "-" + line[3:]
}

// IsCallSign validates an amateur radio call sign such as DF1ABC or
// DF1ABC-14. The call sign is returned upper-cased.
func IsCallSign(value string) (*CallSign, bool) {
	m := callSignRE.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil, false
	}

	return &CallSign{CallSign: strings.ToUpper(m[1]), SSID: m[2]}, true
}
