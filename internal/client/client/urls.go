package client

import "strings"

// NormalizeURL resolves a backend-relative asset path against base.
//
//	""                 -> ""
//	"http://..."       -> unchanged
//	"https://..."      -> unchanged
//	"/uploads/a.png"   -> base + "/uploads/a.png"
//	anything else      -> unchanged
//
// Applying it twice gives the same result as applying it once, provided
// base itself is absolute.
func NormalizeURL(base, u string) string {
	switch {
	case u == "":
		return ""
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
		return u
	case strings.HasPrefix(u, "/"):
		return base + u
	default:
		return u
	}
}
