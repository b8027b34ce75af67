package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

// Login codes are drawn uniformly from [100000, 999999]
const (
	loginCodeMin  = 100000
	loginCodeSpan = 900000
)

// GenerateLoginCode returns a 6-digit numeric code
func GenerateLoginCode() (string, error) {
	return generateLoginCode(rand.Reader)
}

func generateLoginCode(random io.Reader) (string, error) {
	n, err := rand.Int(random, big.NewInt(loginCodeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate login code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+loginCodeMin, 10), nil
}
