package feed

import "strings"

// DefaultFatalMessages is the fixed set of control messages that end the
// session: authentication failure and license or permission denial. These
// are not transient disconnects; the feed will never recover from them on
// its own.
var DefaultFatalMessages = []string{
	"invalid login.",
	"software key not found.",
	"you don't have any permission for this software.",
}

// IsFatalControl reports whether msg is one of the session-fatal control
// messages. Matching is case-insensitive and exact.
func IsFatalControl(msg string, fatal []string) bool {
	lower := strings.ToLower(msg)
	for _, f := range fatal {
		if lower == strings.ToLower(f) {
			return true
		}
	}
	return false
}
