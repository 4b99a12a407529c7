package utils

import (
	"crypto/rand"
	"errors"
	"math/big"

	"gorm.io/gorm"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const inviteCodeMaxRetries = 5

// ErrInviteCodeExhausted is returned when no collision-free code was found
// within the retry budget.
var ErrInviteCodeExhausted = errors.New("failed to generate a unique invite code")

// GenerateInviteCode returns a random code of the given length from a
// URL-safe alphabet, using crypto/rand.
func GenerateInviteCode(length int) (string, error) {
	if length <= 0 {
		length = 8
	}
	buf := make([]byte, length)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// UniqueInviteCode generates a code that does not collide with an existing
// row, retrying a bounded number of times. The count query is advisory; the
// unique index on the column remains the final arbiter.
func UniqueInviteCode(db *gorm.DB, model interface{}, length int) (string, error) {
	for attempt := 0; attempt < inviteCodeMaxRetries; attempt++ {
		code, err := GenerateInviteCode(length)
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(model).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", ErrInviteCodeExhausted
}
