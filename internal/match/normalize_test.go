package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"userID", "userid"},
		{"user_id", "userid"},
		{"user-id", "userid"},
		{"USERID", "userid"},

		// camelCase variations
		{"firstName", "firstname"},
		{"FirstName", "firstname"},
		{"first_name", "firstname"},
		{"FIRST_NAME", "firstname"},

		// Header names
		{"Content-Type", "contenttype"},
		{"X-API-Key", "xapikey"},

		// Dotted paths
		{"user.address.zipCode", "useraddresszipcode"},

		// Edge cases
		{"", ""},
		{"a", "a"},
		{"ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestNormalizeIdentWithSuffixStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"userId", "user"},
		{"customer_id", "customer"},
		{"orderIds", "order"},
		{"createdAt", "created"},
		{"updated_at", "updated"},
		{"createdUTC", "created"},
		{"createdTimestamp", "created"},

		// Should not strip if result would be empty
		{"id", "id"},
		{"At", "at"},

		// No suffix to strip
		{"firstName", "firstname"},
		{"email", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdentWithSuffixStrip(tt.input))
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"userID", []string{"user", "ID"}},
		{"firstName", []string{"first", "Name"}},
		{"X-API-Key", []string{"X", "API", "Key"}},
		{"user.firstName", []string{"user", "first", "Name"}},
		{"zip_code", []string{"zip", "code"}},
		{"lowercase", []string{"lowercase"}},
		{"", nil},
		{"AbC", []string{"Ab", "C"}},
		{"parseURL", []string{"parse", "URL"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"__a__", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, words(tt.input))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "userfirstname", NormalizePath("body.user.firstName"))
	assert.Equal(t, "userfirstname", NormalizePath("user.first_name"))
	assert.Equal(t, "contenttype", NormalizePath("header.Content-Type"))
}
