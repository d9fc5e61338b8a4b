// Package common holds the vocabulary shared by notification URLs and
// configuration files: notification types, body formats, overflow modes,
// configuration formats and the reserved tags.
package common

import (
	"strings"

	"github.com/pkg/errors"
)

// NotifyType is the severity of a notification.
type NotifyType string

const (
	NotifyTypeInfo    NotifyType = "info"
	NotifyTypeSuccess NotifyType = "success"
	NotifyTypeWarning NotifyType = "warning"
	NotifyTypeFailure NotifyType = "failure"
)

// NotifyTypes lists every NotifyType.
var NotifyTypes = []NotifyType{NotifyTypeInfo, NotifyTypeSuccess, NotifyTypeWarning, NotifyTypeFailure}

// NotifyFormat is the markup of a notification body.
type NotifyFormat string

const (
	NotifyFormatText     NotifyFormat = "text"
	NotifyFormatHTML     NotifyFormat = "html"
	NotifyFormatMarkdown NotifyFormat = "markdown"
)

// NotifyFormats lists every NotifyFormat.
var NotifyFormats = []NotifyFormat{NotifyFormatText, NotifyFormatHTML, NotifyFormatMarkdown}

// OverflowMode decides what happens to a body longer than a service allows.
type OverflowMode string

const (
	// OverflowUpstream passes the body on and lets the service decide.
	OverflowUpstream OverflowMode = "upstream"
	// OverflowTruncate cuts the body at the limit.
	OverflowTruncate OverflowMode = "truncate"
	// OverflowSplit sends the body as several messages.
	OverflowSplit OverflowMode = "split"
)

// OverflowModes lists every OverflowMode.
var OverflowModes = []OverflowMode{OverflowUpstream, OverflowTruncate, OverflowSplit}

// ConfigFormat is the syntax of a configuration file.
type ConfigFormat string

const (
	ConfigFormatText ConfigFormat = "text"
	ConfigFormatYAML ConfigFormat = "yaml"
)

// ConfigFormats lists every ConfigFormat.
var ConfigFormats = []ConfigFormat{ConfigFormatText, ConfigFormatYAML}

// NotifyImageSize is the resolution of a notification icon.
type NotifyImageSize string

const (
	ImageSize32  NotifyImageSize = "32x32"
	ImageSize72  NotifyImageSize = "72x72"
	ImageSize128 NotifyImageSize = "128x128"
	ImageSize256 NotifyImageSize = "256x256"
)

// ImageSizes lists every NotifyImageSize.
var ImageSizes = []NotifyImageSize{ImageSize32, ImageSize72, ImageSize128, ImageSize256}

// Reserved tags.
const (
	// MatchAllTag is carried implicitly by every URL.
	MatchAllTag = "all"
	// MatchAlwaysTag marks a URL that is notified whatever tags are asked for.
	MatchAlwaysTag = "always"
)

// ErrUnknownValue is the cause of every Parse* failure.
var ErrUnknownValue = errors.New("unknown value")

func parseEnum[T ~string](kind, value string, valid []T) (T, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	for _, v := range valid {
		if string(v) == normalized {
			return v, nil
		}
	}

	var zero T

	return zero, errors.Wrapf(ErrUnknownValue, "invalid %s %q", kind, value)
}

// ParseNotifyType matches value case-insensitively.
func ParseNotifyType(value string) (NotifyType, error) {
	return parseEnum("notify type", value, NotifyTypes)
}

// ParseNotifyFormat matches value case-insensitively.
func ParseNotifyFormat(value string) (NotifyFormat, error) {
	return parseEnum("notify format", value, NotifyFormats)
}

// ParseOverflowMode matches value case-insensitively.
func ParseOverflowMode(value string) (OverflowMode, error) {
	return parseEnum("overflow mode", value, OverflowModes)
}

// ParseConfigFormat matches value case-insensitively.
func ParseConfigFormat(value string) (ConfigFormat, error) {
	return parseEnum("config format", value, ConfigFormats)
}

// ParseImageSize matches value case-insensitively.
func ParseImageSize(value string) (NotifyImageSize, error) {
	return parseEnum("image size", value, ImageSizes)
}
