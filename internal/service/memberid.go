package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const alnumCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomAlnum(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alnumCharset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic(fmt.Sprintf("random source unavailable: %v", err))
		}
		out[i] = alnumCharset[idx.Int64()]
	}
	return string(out)
}

// GenerateMemberID produces a globally-unique opaque member id of the form
// MEMBER_<unix millis>_<9 alnum chars>. Assigned once, never reused.
func GenerateMemberID() string {
	return fmt.Sprintf("MEMBER_%d_%s", time.Now().UnixMilli(), randomAlnum(9))
}

// GenerateOneTimePassword produces the password for accounts provisioned at
// checkout time. It is surfaced to the user exactly once.
func GenerateOneTimePassword() string {
	return randomAlnum(12)
}
