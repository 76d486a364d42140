package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIDPrefersURL(t *testing.T) {
	a := HashID("https://example.com/job/1", "Graduate Engineer", "Acme", "Adelaide")
	b := HashID("https://example.com/job/1", "Different Title", "Other Co", "Melbourne")
	assert.Equal(t, a, b, "URL identity should ignore the other fields")

	c := HashID("https://example.com/job/2", "Graduate Engineer", "Acme", "Adelaide")
	assert.NotEqual(t, a, c)
}

func TestHashIDURLCaseAndWhitespace(t *testing.T) {
	a := HashID("https://example.com/job/1", "", "", "")
	b := HashID("  HTTPS://EXAMPLE.COM/JOB/1  ", "", "", "")
	assert.Equal(t, a, b)
}

func TestHashIDFallbackFields(t *testing.T) {
	a := HashID("", "Graduate Engineer", "Acme", "Adelaide")
	b := HashID("", "graduate engineer", "ACME", "adelaide")
	if a != b {
		t.Errorf("fallback hash should be case-insensitive: %s != %s", a, b)
	}

	c := HashID("", "Graduate Engineer", "Acme", "Melbourne")
	if a == c {
		t.Errorf("different location should change the fallback hash")
	}
}

func TestHashIDStableHex(t *testing.T) {
	h := HashID("https://example.com/job/1", "", "", "")
	assert.Len(t, h, 32)
	assert.Equal(t, h, HashID("https://example.com/job/1", "", "", ""))
}
