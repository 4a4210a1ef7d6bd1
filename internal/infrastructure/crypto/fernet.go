// Package crypto holds the reversible user id codec used in download links.
package crypto

import (
	"fmt"
	"strconv"

	"github.com/fernet/fernet-go"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// FernetCodec encrypts user ids into Fernet tokens. Tokens never expire.
type FernetCodec struct {
	keys []*fernet.Key
}

// NewFernetCodec decodes a urlsafe base64 encoded 32 byte key.
func NewFernetCodec(key string) (*FernetCodec, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("decode fernet key: %w", err)
	}
	return &FernetCodec{keys: []*fernet.Key{k}}, nil
}

// GenerateKey returns a fresh encoded key suitable for FERNET_SECRET_KEY.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

func (c *FernetCodec) Encrypt(userID int64) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(strconv.FormatInt(userID, 10)), c.keys[0])
	if err != nil {
		return "", fmt.Errorf("fernet encrypt: %w", err)
	}
	return string(tok), nil
}

func (c *FernetCodec) Decrypt(token string) (int64, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, c.keys)
	if msg == nil {
		return 0, domain.ErrInvalidToken
	}
	id, err := strconv.ParseInt(string(msg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric payload", domain.ErrInvalidToken)
	}
	return id, nil
}
