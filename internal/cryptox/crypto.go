// Package cryptox derives keys from configured secrets and seals small
// values (tokens) with AES-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

const (
	sessionHashSalt  = "factorg/session/hash"
	sessionBlockSalt = "factorg/session/block"
	storeSalt        = "factorg/cli/store"
)

// DeriveKey stretches secret with Argon2id into a key of keyLen bytes.
func DeriveKey(secret, salt []byte, keyLen uint32) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, keyLen)
}

// SessionKeys returns the cookie authentication key (64 bytes) and
// encryption key (32 bytes, AES-256) for the panel session.
func SessionKeys(secret string) (hashKey, blockKey []byte) {
	hashKey = DeriveKey([]byte(secret), []byte(sessionHashSalt), 64)
	blockKey = DeriveKey([]byte(secret), []byte(sessionBlockSalt), 32)
	return hashKey, blockKey
}

// StoreKey returns the AES-256 key the console uses for tokens at rest.
func StoreKey(secret string) []byte {
	return DeriveKey([]byte(secret), []byte(storeSalt), 32)
}

// Seal encrypts plaintext with AES-GCM under key using a fresh random nonce.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open reverses Seal.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
