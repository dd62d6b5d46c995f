package utils

import (
	"testing"
)

func TestSanitizeHostName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"LowercaseSimple", "WebServer", "webserver"},
		{"SpacesToHyphens", "web server", "web-server"},
		{"RemoveSpecialChars", "web@server#01!", "webserver01"},
		{"RemoveConsecutiveHyphens", "web--01", "web-01"},
		{"TrimHyphens", "-web-01-", "web-01"},
		{"KeepDomainDots", "db1.example.com", "db1.example.com"},
		{"TrimDots", ".db1.", "db1"},
		{"EmptyToDefault", "", "localhost"},
		{"OnlySpecialChars", "@#$%", "localhost"},
		{"PreserveUnderscores", "web_01", "web_01"},
		{"TrimWhitespace", "  web01  ", "web01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeHostName(tc.input)
			if result != tc.expected {
				t.Errorf("SanitizeHostName(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestCurrentHost(t *testing.T) {
	host := CurrentHost()
	if host == "" {
		t.Fatal("Expected non-empty host name")
	}
	if host != SanitizeHostName(host) {
		t.Errorf("CurrentHost() = %q is not sanitized", host)
	}
}

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Skipf("Cannot determine current user: %v", err)
	}
	if username == "" {
		t.Error("Expected non-empty username")
	}
}
