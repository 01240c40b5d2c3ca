package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL derives a gravatar image URL from an email address: 200px,
// PG-rated, with the "mystery man" fallback for addresses without a profile.
// Gravatar requires the MD5 of the lowercased, trimmed address; MD5 is used
// here as an identifier, not for any security purpose.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
