package uniuri

import "crypto/rand"

const (
	// StdLen is the default identifier length, about 95 bits of entropy.
	StdLen = 16
	// TokenIDLen is the length used for token identifiers (JWT "jti").
	TokenIDLen = 20
)

// StdChars is the default alphabet, URL-safe without padding characters.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of the default length and alphabet.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of the given length using the default
// alphabet.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of the given length drawn uniformly
// from chars. The alphabet must hold between 2 and 256 characters. It
// panics when the platform's random source fails, since identifiers
// generated from a broken source must never be used.
func NewLenChars(length int, chars []byte) string {
	if length == 0 {
		return ""
	}
	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: alphabet must hold between 2 and 256 characters")
	}

	// Rejection sampling keeps the distribution uniform: byte values in
	// the truncated final cycle of the alphabet are discarded.
	maxrb := 255 - (256 % clen)

	out := make([]byte, length)
	buf := make([]byte, length+length/2)

	i := 0
	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: reading random bytes: " + err.Error())
		}
		for _, b := range buf {
			if int(b) > maxrb {
				continue
			}
			out[i] = chars[int(b)%clen]
			i++
			if i == length {
				return string(out)
			}
		}
	}
}
