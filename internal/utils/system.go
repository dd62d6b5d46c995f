package utils

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

var (
	invalidHostChars = regexp.MustCompile(`[^a-z0-9\-_.]`)
	repeatedHyphens  = regexp.MustCompile(`-+`)
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// SanitizeHostName lowercases a host name and strips characters that are
// not valid in a git branch name. Spaces become hyphens.
func SanitizeHostName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = invalidHostChars.ReplaceAllString(name, "")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")

	if name == "" {
		name = "localhost"
	}
	return name
}

// CurrentHost returns the sanitized host name, or "localhost" when it
// cannot be determined.
func CurrentHost() string {
	hostname, err := GetHostname()
	if err != nil {
		return "localhost"
	}
	return SanitizeHostName(hostname)
}
