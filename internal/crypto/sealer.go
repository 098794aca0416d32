// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize = 16
	ivSize   = 16
	keySize  = 32 // 256 bits

	// kdfIterations is deliberately high to slow down offline guessing.
	kdfIterations = 100_000
)

// vaultSealer is the private implementation of [Sealer]. It derives a
// 256-bit key from the master password via PBKDF2-SHA256 and encrypts with
// AES-256 in CBC mode using PKCS#7 padding.
//
// The blob carries no integrity tag: ciphertext can be bit-flipped without
// detection. The layout is a fixed on-disk contract, so this stays a known
// deficiency rather than being silently upgraded to an AEAD mode.
type vaultSealer struct {
	// iterations is stored in the struct so tests can lower the KDF cost.
	iterations int
}

// NewSealer constructs a [Sealer] with production KDF parameters
// (PBKDF2-SHA256, 100,000 iterations, 256-bit key).
func NewSealer() Sealer {
	return &vaultSealer{iterations: kdfIterations}
}

// deriveKey stretches the master password into an AES-256 key using the
// given salt.
func (s *vaultSealer) deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, s.iterations, keySize, sha256.New)
}

// Seal implements [Sealer].
func (s *vaultSealer) Seal(content []byte, password string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.deriveKey(password, salt))
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(content, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	blob := make([]byte, 0, saltSize+ivSize+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Unseal implements [Sealer]. Every failure path returns an empty slice.
func (s *vaultSealer) Unseal(password string, blob []byte) []byte {
	if len(blob) < saltSize+ivSize {
		return []byte{}
	}

	salt := blob[:saltSize]
	iv := blob[saltSize : saltSize+ivSize]
	ciphertext := blob[saltSize+ivSize:]

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return []byte{}
	}

	block, err := aes.NewCipher(s.deriveKey(password, salt))
	if err != nil {
		return []byte{}
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	// A wrong password produces garbage plaintext, which fails the padding
	// check here with overwhelming probability.
	content, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return []byte{}
	}
	return content
}

// pkcs7Pad appends PKCS#7 padding up to a whole number of blocks.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad strips PKCS#7 padding, validating every padding byte.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errors.New("invalid padding value")
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("inconsistent padding bytes")
		}
	}
	return data[:len(data)-padLen], nil
}
