package rest

import (
	"regexp"
	"unicode/utf16"
)

// E.164 with optional plus: 2-15 digits, no leading zero.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

const maxBodyLength = 1600

// ValidateSendSMSRequest checks a send request against the format rules
// and returns one human-readable message per failing field.
func ValidateSendSMSRequest(req SendSMSRequest) []string {
	var errs []string

	if req.To == "" {
		errs = append(errs, "Phone number is required")
	} else if !phonePattern.MatchString(req.To) {
		errs = append(errs, "Invalid phone number format")
	}

	if req.Body == "" {
		errs = append(errs, "Message is required")
	} else if len(utf16.Encode([]rune(req.Body))) > maxBodyLength {
		// UTF-16 code units, so astral characters count double
		errs = append(errs, "Message too long")
	}

	return errs
}
