package crypto

// Sealer turns a serialized vault and a master password into an opaque
// sealed blob and back. It knows nothing about files, accounts or entries;
// its only job is protecting bytes at rest.
//
// Blob layout: salt (16 bytes) ‖ iv (16 bytes) ‖ ciphertext.
type Sealer interface {
	// Seal encrypts content under a key derived from password.
	// A fresh random salt and IV are generated on every call, so sealing
	// the same content twice produces different blobs.
	Seal(content []byte, password string) ([]byte, error)

	// Unseal decrypts a blob produced by Seal. Any failure — truncated or
	// corrupt blob, wrong password surfacing as invalid padding — yields an
	// empty result, never an error: at this layer a wrong master password is
	// indistinguishable from an empty vault. Callers separate "wrong
	// password" from "new user" by other signals, such as account existence.
	Unseal(password string, blob []byte) []byte
}
