package gazeta

import (
	"net/url"
	"strings"
)

// NormalizeURL validates rawURL and returns its canonical form: scheme and
// host lowercased, query string and fragment stripped. Tracking parameters
// vary per visitor and would otherwise split one article into many
// identities.
func NormalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", Errorf(EINVALID, "malformed url %q", rawURL)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "url %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "url %q has no host", rawURL)
	}
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}
