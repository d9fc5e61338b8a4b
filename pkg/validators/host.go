package validators

import (
	"net/netip"
	"regexp"
	"strings"
)

var (
	hostLabelRE             = regexp.MustCompile(`(?i)^(?:[a-z0-9][a-z0-9_-]{1,62}|[a-z])$`)
	hostLabelNoUnderscoreRE = regexp.MustCompile(`(?i)^(?:[a-z0-9][a-z0-9-]{1,62}|[a-z])$`)
	numericHostRE           = regexp.MustCompile(`^[0-9.]+$`)
	ipv4RE                  = regexp.MustCompile(`^(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(?:\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)){3}$`)
	ipv6RE                  = regexp.MustCompile(`(?i)^\[?([0-9a-f:]+)\]?$`)
)

const maxHostnameLength = 253

// HostnameOptions selects what IsHostname accepts besides DNS names.
type HostnameOptions struct {
	IPv4       bool
	IPv6       bool
	Underscore bool
}

// DefaultHostnameOptions accepts IP addresses and underscores in labels.
func DefaultHostnameOptions() HostnameOptions {
	return HostnameOptions{IPv4: true, IPv6: true, Underscore: true}
}

// IPOptions selects the address families IsIPAddr accepts.
type IPOptions struct {
	IPv4 bool
	IPv6 bool
}

// IsHostname validates a DNS name or, failing that, an IP address.
//
// A single trailing dot is dropped from the returned name. Labels may not
// start with a hyphen or end with a hyphen or underscore. A name made of
// four numeric labels is only ever judged as an IPv4 address. IPv6 results
// are returned bracketed.
func IsHostname(value string, opts HostnameOptions) (string, bool) {
	if len(value) == 0 || len(value) > maxHostnameLength {
		return "", false
	}

	hostname := strings.TrimSuffix(value, ".")
	labels := strings.Split(hostname, ".")

	if len(labels) == 4 && numericHostRE.MatchString(hostname) {
		return IsIPAddr(hostname, IPOptions{IPv4: opts.IPv4})
	}

	labelRE := hostLabelRE
	if !opts.Underscore {
		labelRE = hostLabelNoUnderscoreRE
	}

	for _, label := range labels {
		if !labelRE.MatchString(label) || strings.HasSuffix(label, "-") || strings.HasSuffix(label, "_") {
			return IsIPAddr(hostname, IPOptions{IPv4: opts.IPv4, IPv6: opts.IPv6})
		}
	}

	return hostname, true
}

// IsIPAddr validates an IPv4 dotted quad or an IPv6 literal. The IPv6 form
// is returned bracketed with the digits exactly as written.
func IsIPAddr(value string, opts IPOptions) (string, bool) {
	if opts.IPv4 && ipv4RE.MatchString(value) {
		return value, true
	}

	if opts.IPv6 {
		if m := ipv6RE.FindStringSubmatch(value); m != nil {
			if addr, err := netip.ParseAddr(m[1]); err == nil && addr.Is6() {
				return "[" + m[1] + "]", true
			}
		}
	}

	return "", false
}
