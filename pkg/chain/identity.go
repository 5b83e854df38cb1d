package chain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidPrivateKey = errors.New("invalid private key")

// Identity is the signing key of the funded sender and its derived address.
type Identity struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewIdentity parses a hex encoded secp256k1 private key, with or without 0x prefix.
func NewIdentity(hexKey string) (*Identity, error) {
	cleanedKey := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if cleanedKey == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidPrivateKey)
	}

	key, err := crypto.HexToECDSA(cleanedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return NewIdentityFromKey(key), nil
}

func NewIdentityFromKey(key *ecdsa.PrivateKey) *Identity {
	return &Identity{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

func (i *Identity) Address() common.Address {
	return i.address
}

func (i *Identity) Key() *ecdsa.PrivateKey {
	return i.key
}
