package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateRegistryURL validates the registry base URL and returns it without
// a trailing slash so that "<base>/<name>.json" can be built by concatenation.
func ValidateRegistryURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("registry URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow http/https schemes to prevent protocol handlers
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid URL scheme: %s (only http/https allowed)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("URL must have a valid hostname")
	}

	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("registry URL must not carry a query or fragment")
	}

	if parsed.User != nil {
		return "", fmt.Errorf("registry URL must not embed credentials")
	}

	if strings.ContainsAny(rawURL, " \n\r\t") {
		return "", fmt.Errorf("URL contains whitespace")
	}

	return strings.TrimRight(rawURL, "/"), nil
}
