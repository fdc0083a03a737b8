package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter(t *testing.T) {
	filter := NewContentFilter()

	cases := []struct {
		name   string
		text   string
		ok     bool
		reason string
	}{
		{"plain text", "hey, loved your last post", true, ""},
		{"empty", "", true, ""},
		{"http url", "check http://example.com/page", false, "url_not_allowed"},
		{"https url", "check https://example.com", false, "url_not_allowed"},
		{"bare www", "go to www.example.com now", false, "url_not_allowed"},
		{"email", "write me at someone@example.com", false, "contact_info_not_allowed"},
		{"phone", "call 555-123-4567", false, "contact_info_not_allowed"},
		{"phone with parens", "call (555) 123-4567", false, "contact_info_not_allowed"},
		{"repeated chars", "heyyyyyy", false, "spam_detected"},
		{"repeated punctuation", "what!!!!!", false, "spam_detected"},
		{"short repeats pass", "sooo good", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := filter.Check(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

func TestRejectionMessage(t *testing.T) {
	filter := NewContentFilter()

	assert.Equal(t, "URLs and web links are not allowed.", filter.RejectionMessage("url_not_allowed"))
	assert.Equal(t, "Your message does not meet our content guidelines.", filter.RejectionMessage("unknown_reason"))
}
