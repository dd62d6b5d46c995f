// Package secrets provides the encryption boundary for confect.
//
// Files matching a category's encrypt patterns are stored in the repository
// inside an age envelope (https://age-encryption.org) addressed to one or
// more recipients. The system copy is always plaintext.
//
// # Schemes
//
// Codec dispatches on a closed Scheme value. Today the only scheme is
// SchemeAge, an asymmetric multi-recipient envelope. Recipients may be native
// X25519 keys (age1...) or OpenSSH public keys (ssh-ed25519, ssh-rsa).
// Passphrase-protected (scrypt) envelopes are rejected on decryption.
//
// # Recipients
//
// Recipients come from a list of strings or from a recipients file with one
// key per line. Blank lines and lines starting with # are skipped. Any other
// line that does not parse fails construction with ErrEncryptionFailure.
//
// # Identities
//
// Decryption needs an identity: an AGE-SECRET-KEY-1... string, an identity
// file in age-keygen format, or an unencrypted OpenSSH private key.
// GenerateKeypair returns fresh strings and leaves storage to the caller.
//
// # Detection
//
// IsEncrypted is a cheap heuristic that checks a 16-byte prefix for the
// "age-encryption." tag. Files shorter than the prefix are reported as not
// encrypted.
package secrets
