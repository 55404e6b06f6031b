package app

import "net/url"

// originPatterns allows websocket upgrades from the configured public host in
// addition to same-origin requests.
func originPatterns(baseURL string) []string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
