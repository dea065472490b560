package contracts

import "labelguard/domain/labels"

// Encryptor is the content protection collaborator. The algorithm is an
// infrastructure choice; the core depends only on this contract.
//
// Ciphertext is label-bound: Decrypt must fail hard when the ciphertext was
// produced under a different label id, never silently pass content through
// under the wrong policy.
type Encryptor interface {
	// ShouldEncrypt reports whether the label's policy requires encryption.
	// Encryption is gated on both the explicit flag and a minimum tier of
	// Confidential.
	ShouldEncrypt(label *labels.Label) bool

	// Encrypt protects content under the label, producing a
	// "ENCRYPTED:<labelId>:<payload>" envelope.
	Encrypt(content string, label *labels.Label) (string, error)

	// Decrypt recovers content from an envelope produced under the same
	// label. A label id mismatch is an EncryptionFailure.
	Decrypt(ciphertext string, label *labels.Label) (string, error)

	// CanDecrypt reports whether the envelope was produced under the label
	// without attempting recovery.
	CanDecrypt(ciphertext string, label *labels.Label) bool
}
