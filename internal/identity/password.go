package identity

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordMinLength = 10
	passwordMaxLength = 16

	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%&*+-_?"
)

// GeneratePassword builds a random initial password between 10 and 16
// characters with at least one lowercase letter, one uppercase letter, one
// digit and one symbol. Ambiguous glyphs (l, I, O, 0, 1) are excluded.
func GeneratePassword() (string, error) {
	length, err := randomInt(passwordMaxLength - passwordMinLength + 1)
	if err != nil {
		return "", err
	}
	length += passwordMinLength

	all := lowerChars + upperChars + digitChars + symbolChars

	chars := make([]byte, 0, length)
	for _, set := range []string{lowerChars, upperChars, digitChars, symbolChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Shuffle so the guaranteed classes do not always lead.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
