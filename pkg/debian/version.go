package debian

import (
	"pault.ag/go/debian/version"
)

// ValidateVersion checks that v is a well-formed Debian version string
// ([epoch:]upstream[-revision]).
func ValidateVersion(v string) error {
	if _, err := version.Parse(v); err != nil {
		return &InvalidVersionError{Version: v, Err: err}
	}
	return nil
}
