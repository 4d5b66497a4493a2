package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

// HashPassword используется утилитой cmd/hashpw для получения ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
