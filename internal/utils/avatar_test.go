package utils

import (
	"strings"
	"testing"
)

func TestGravatarURL(t *testing.T) {
	u := GravatarURL("a@x.com")
	if !strings.HasPrefix(u, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected url %q", u)
	}
	// Address normalization: case and surrounding whitespace must not change
	// the derived hash.
	if GravatarURL("  A@X.COM ") != u {
		t.Fatal("gravatar hash differs for the same normalized address")
	}
	if GravatarURL("b@x.com") == u {
		t.Fatal("distinct addresses produced the same avatar URL")
	}
}
