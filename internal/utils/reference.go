package utils

import (
	"crypto/rand"
	"fmt"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferenceLength is the length of a draft reference code.
const ReferenceLength = 8

// NewReferenceCode generates a short uppercase reference code for resuming
// a draft. Codes are random; the storage layer enforces uniqueness.
func NewReferenceCode() (string, error) {
	buf := make([]byte, ReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating reference code: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return string(buf), nil
}
