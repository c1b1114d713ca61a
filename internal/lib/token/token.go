// Package token реализует выпуск одноразовых непрозрачных токенов
// для подтверждения почты и сброса пароля.
//
// New генерирует криптографически случайную строку, Expiry возвращает
// абсолютную метку времени истечения.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// tokenBytes количество случайных байт в токене, 32 байта дают 256 бит энтропии.
const tokenBytes = 32

// New возвращает новый непрозрачный токен в hex-кодировке.
//
// Токен не содержит встроенной структуры, его валидность определяется
// только поиском в хранилище.
func New() (string, error) {
	const op = "token.New"
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}

// Expiry возвращает абсолютную метку истечения токена: now+ttl в UTC.
func Expiry(ttl time.Duration) time.Time {
	return time.Now().UTC().Add(ttl)
}
