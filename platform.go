package modalprompt

import (
	"fmt"
	"strings"
)

// Platform classifies the runtime by its input affordances.
type Platform int

const (
	// PlatformDesktop has a physical keyboard: Shift+Enter inserts a
	// newline and plain Enter confirms a multi-line prompt.
	PlatformDesktop Platform = iota
	// PlatformTouch uses an on-screen keyboard: Enter in a multi-line
	// prompt does nothing and only the Submit control confirms.
	PlatformTouch
)

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case PlatformDesktop:
		return "desktop"
	case PlatformTouch:
		return "touch"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// ParsePlatform parses a platform name. "mobile" is accepted as an alias
// for touch.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop":
		return PlatformDesktop, nil
	case "touch", "mobile":
		return PlatformTouch, nil
	default:
		return PlatformDesktop, fmt.Errorf("unknown platform %q (want desktop or touch)", s)
	}
}

// DetectPlatform guesses the platform from environment variables looked up
// through lookupEnv (usually os.LookupEnv). Terminals running on Android,
// such as Termux, are touch-class; everything else is desktop-class.
//
// The dialog never calls this itself: callers decide whether to detect and
// pass the result with WithPlatform.
func DetectPlatform(lookupEnv func(string) (string, bool)) Platform {
	if lookupEnv == nil {
		return PlatformDesktop
	}
	for _, key := range []string{"TERMUX_VERSION", "ANDROID_ROOT", "ANDROID_DATA"} {
		if v, ok := lookupEnv(key); ok && v != "" {
			return PlatformTouch
		}
	}
	return PlatformDesktop
}
