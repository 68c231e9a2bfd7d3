package utils

import "golang.org/x/crypto/bcrypt"

// HashPin возвращает bcrypt-хэш PIN-кода кассы.
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPin сравнивает bcrypt-хэш с введённым PIN.
func VerifyPin(hashedPin, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPin), []byte(pin))
}
