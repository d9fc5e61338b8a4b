// Package validators recognizes the primitive identifiers that appear in
// notification URLs: hostnames, IP addresses, UUIDs, emails, phone numbers
// and call signs. Every check returns a failure value instead of an error.
package validators

import (
	"fmt"
	"strings"
)

// Identifier types reported by Classify.
const (
	TypeUUID      = "uuid"
	TypeEmail     = "email"
	TypePhone     = "phone"
	TypeCallSign  = "call_sign"
	TypeIPAddress = "ip_address"
	TypeHostname  = "hostname"
	TypeUnknown   = "unknown"
)

// ValidationResult represents the result of a validation check
type ValidationResult struct {
	Valid   bool                   `json:"valid"`
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ClassifyOptions tunes Classify.
type ClassifyOptions struct {
	PhoneMinLength int
	Hostname       HostnameOptions
}

// DefaultClassifyOptions mirrors the defaults of the individual validators.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{
		PhoneMinLength: DefaultPhoneMinLength,
		Hostname:       DefaultHostnameOptions(),
	}
}

// Classify tries each validator in turn and reports the first that
// accepts input. Narrow shapes are tried before broad ones: a call sign
// such as DF1ABC is also a valid hostname label.
func Classify(input string, opts ClassifyOptions) ValidationResult {
	input = strings.TrimSpace(input)

	if IsUUID(input) {
		return ValidationResult{
			Valid:   true,
			Type:    TypeUUID,
			Message: "Valid UUID",
			Details: map[string]interface{}{"version": 4},
		}
	}

	if email, ok := IsEmail(input); ok {
		return ValidationResult{
			Valid:   true,
			Type:    TypeEmail,
			Message: "Valid email",
			Details: map[string]interface{}{
				"name":       email.Name,
				"user":       email.User,
				"label":      email.Label,
				"domain":     email.Domain,
				"email":      email.Email,
				"full_email": email.FullEmail,
			},
		}
	}

	if phone, ok := IsPhoneNo(input, opts.PhoneMinLength); ok {
		return ValidationResult{
			Valid:   true,
			Type:    TypePhone,
			Message: "Valid phone number",
			Details: map[string]interface{}{
				"country": phone.Country,
				"area":    phone.Area,
				"line":    phone.Line,
				"pretty":  phone.Pretty,
				"full":    phone.Full,
			},
		}
	}

	if cs, ok := IsCallSign(input); ok {
		return ValidationResult{
			Valid:   true,
			Type:    TypeCallSign,
			Message: "Valid call sign",
			Details: map[string]interface{}{
				"callsign": cs.CallSign,
				"ssid":     cs.SSID,
			},
		}
	}

	if addr, ok := IsIPAddr(input, IPOptions{IPv4: opts.Hostname.IPv4, IPv6: opts.Hostname.IPv6}); ok {
		return ValidationResult{
			Valid:   true,
			Type:    TypeIPAddress,
			Message: "Valid IP address",
			Details: map[string]interface{}{"address": addr},
		}
	}

	if host, ok := IsHostname(input, opts.Hostname); ok {
		return ValidationResult{
			Valid:   true,
			Type:    TypeHostname,
			Message: "Valid hostname",
			Details: map[string]interface{}{"hostname": host},
		}
	}

	return ValidationResult{
		Valid:   false,
		Type:    TypeUnknown,
		Message: fmt.Sprintf("Unrecognized identifier: %q", input),
	}
}
