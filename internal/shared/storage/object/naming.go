package object

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// UniqueName builds "<stem>_<random>.<ext>" from a sanitized file name, so
// concurrent uploads of the same file never collide. The random token is the
// last underscore-separated segment of the stem; title derivation relies on
// that position.
func UniqueName(sanitized string) string {
	ext := filepath.Ext(sanitized)
	stem := strings.TrimSuffix(sanitized, ext)
	return fmt.Sprintf("%s_%s%s", stem, RandomToken(), strings.ToLower(ext))
}

// RandomToken returns a 32-char hex token.
func RandomToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
