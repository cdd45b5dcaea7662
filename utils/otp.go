package utils

import "crypto/rand"

// GenerateOTP returns a numeric code of n digits from crypto/rand.
func GenerateOTP(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failing means the system entropy source is broken;
		// nothing sensible to fall back to.
		panic(err)
	}
	code := make([]byte, n)
	for i := 0; i < n; i++ {
		code[i] = '0' + (bytes[i] % 10)
	}
	return string(code)
}
