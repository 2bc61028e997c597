package crypto

import (
	"crypto/rand"
	"math"
)

// NanoID generation for store-assigned user ids. URL-safe alphabet,
// 22 characters at 6 bits each gives 132 bits of entropy (a uuid is 128).
const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     = 22
	idMask     = 63 // idAlphabet is exactly 64 characters
)

// NewID returns a fresh nanoid. Random bytes are mapped onto the
// alphabet with rejection sampling so every character stays uniformly
// distributed.
func NewID() (string, error) {
	step := int(math.Ceil(1.6 * float64(idMask*idSize) / float64(len(idAlphabet))))

	id := make([]byte, idSize)
	buffer := make([]byte, step)

	for position := 0; position < idSize; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		for i := 0; i < step && position < idSize; i++ {
			index := buffer[i] & idMask
			if int(index) < len(idAlphabet) {
				id[position] = idAlphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
