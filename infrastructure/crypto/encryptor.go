// Package crypto implements the label-bound content encryptor. The envelope
// format ENCRYPTED:<labelId>:<payload> binds ciphertext to the label it was
// produced under; decryption with any other label is a hard failure.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"labelguard/domain/contracts"
	"labelguard/domain/labels"
	"labelguard/domain/policy"
)

const envelopePrefix = "ENCRYPTED:"

// LabelEncryptor implements contracts.Encryptor using AES-GCM with a
// per-label key derived from the configured secret and the label id.
type LabelEncryptor struct {
	secret []byte
}

// NewLabelEncryptor creates an encryptor from the configured secret.
func NewLabelEncryptor(secret string) *LabelEncryptor {
	return &LabelEncryptor{secret: []byte(secret)}
}

// ShouldEncrypt reports whether the label's policy requires encryption:
// the explicit flag, gated on a minimum tier of Confidential.
func (e *LabelEncryptor) ShouldEncrypt(label *labels.Label) bool {
	return policy.RequiresEncryption(label)
}

// Encrypt protects content under the label's derived key.
func (e *LabelEncryptor) Encrypt(content string, label *labels.Label) (string, error) {
	gcm, err := e.aead(label.ID)
	if err != nil {
		return "", contracts.NewEncryptionFailure(label.ID, "encrypt", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", contracts.NewEncryptionFailure(label.ID, "encrypt", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(content), nil)
	payload := base64.StdEncoding.EncodeToString(sealed)
	return envelopePrefix + label.ID + ":" + payload, nil
}

// Decrypt recovers content from an envelope produced under the same label.
// A label id mismatch is an EncryptionFailure, never a pass-through: content
// must not leak under the wrong policy.
func (e *LabelEncryptor) Decrypt(ciphertext string, label *labels.Label) (string, error) {
	embeddedID, payload, err := splitEnvelope(ciphertext)
	if err != nil {
		return "", contracts.NewEncryptionFailure(label.ID, "decrypt", err)
	}
	if embeddedID != label.ID {
		return "", contracts.NewEncryptionFailure(label.ID, "decrypt",
			fmt.Errorf("ciphertext was encrypted under label %q", embeddedID))
	}

	sealed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", contracts.NewEncryptionFailure(label.ID, "decrypt", err)
	}

	gcm, err := e.aead(label.ID)
	if err != nil {
		return "", contracts.NewEncryptionFailure(label.ID, "decrypt", err)
	}
	if len(sealed) < gcm.NonceSize() {
		return "", contracts.NewEncryptionFailure(label.ID, "decrypt", errors.New("ciphertext too short"))
	}

	nonce, body := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, body, nil)
	if err != nil {
		return "", contracts.NewEncryptionFailure(label.ID, "decrypt", err)
	}
	return string(plain), nil
}

// CanDecrypt reports whether the envelope was produced under the label.
func (e *LabelEncryptor) CanDecrypt(ciphertext string, label *labels.Label) bool {
	embeddedID, _, err := splitEnvelope(ciphertext)
	return err == nil && embeddedID == label.ID
}

// IsEncrypted reports whether the string carries the encryption envelope.
func IsEncrypted(s string) bool {
	return strings.HasPrefix(s, envelopePrefix)
}

func splitEnvelope(ciphertext string) (labelID, payload string, err error) {
	if !strings.HasPrefix(ciphertext, envelopePrefix) {
		return "", "", errors.New("content is not an encryption envelope")
	}
	rest := strings.TrimPrefix(ciphertext, envelopePrefix)
	idx := strings.IndexByte(rest, ':')
	if idx <= 0 {
		return "", "", errors.New("malformed encryption envelope")
	}
	return rest[:idx], rest[idx+1:], nil
}

// aead derives the per-label AES-GCM cipher. Key material is the SHA-256 of
// the configured secret and the label id, so rotating either invalidates
// existing ciphertext.
func (e *LabelEncryptor) aead(labelID string) (cipher.AEAD, error) {
	sum := sha256.Sum256(append(append([]byte{}, e.secret...), []byte(labelID)...))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
