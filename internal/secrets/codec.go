package secrets

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"filippo.io/age"
	"filippo.io/age/agessh"
)

// Scheme identifies an envelope format.
type Scheme int

const (
	SchemeAge Scheme = iota + 1
)

func (s Scheme) String() string {
	switch s {
	case SchemeAge:
		return "age"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

const (
	// encryptedTag starts every binary age envelope.
	encryptedTag = "age-encryption."
	prefixLength = 16

	ageVersionLine = "age-encryption.org/v1"
	headerPeekSize = 64 * 1024
)

// Identity is a private key able to open envelopes.
type Identity = age.Identity

// Codec encrypts and decrypts whole files for a fixed set of recipients.
type Codec struct {
	scheme     Scheme
	recipients []age.Recipient
}

// NewCodec parses recipient strings. Blank and comment entries are skipped.
func NewCodec(recipients []string) (*Codec, error) {
	codec := &Codec{scheme: SchemeAge}

	for _, line := range recipients {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		recipient, err := parseRecipient(line)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid recipient %q: %v", kerrors.ErrEncryptionFailure, line, err)
		}
		codec.recipients = append(codec.recipients, recipient)
	}

	return codec, nil
}

// NewCodecFromFile reads recipients from a file, one per line.
func NewCodecFromFile(path string) (*Codec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kerrors.IO("reading recipients file", path, err)
	}
	return NewCodec(strings.Split(string(data), "\n"))
}

func parseRecipient(s string) (age.Recipient, error) {
	if strings.HasPrefix(s, "ssh-") {
		return agessh.ParseRecipient(s)
	}
	return age.ParseX25519Recipient(s)
}

// Scheme returns the envelope scheme the codec produces.
func (c *Codec) Scheme() Scheme {
	return c.scheme
}

// Recipients returns the number of configured recipients.
func (c *Codec) Recipients() int {
	return len(c.recipients)
}

// Encrypt streams src into an envelope written to dst.
func (c *Codec) Encrypt(dst io.Writer, src io.Reader) error {
	switch c.scheme {
	case SchemeAge:
		return c.encryptAge(dst, src)
	default:
		return fmt.Errorf("%w: unsupported scheme %s", kerrors.ErrEncryptionFailure, c.scheme)
	}
}

func (c *Codec) encryptAge(dst io.Writer, src io.Reader) error {
	if len(c.recipients) == 0 {
		return fmt.Errorf("%w: no recipients configured", kerrors.ErrEncryptionFailure)
	}

	w, err := age.Encrypt(dst, c.recipients...)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrEncryptionFailure, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("%w: writing envelope: %v", kerrors.ErrEncryptionFailure, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: finishing envelope: %v", kerrors.ErrEncryptionFailure, err)
	}
	return nil
}

// Decrypt opens the envelope read from src with identity and writes the
// plaintext to dst.
func (c *Codec) Decrypt(dst io.Writer, src io.Reader, identity Identity) error {
	switch c.scheme {
	case SchemeAge:
		return decryptAge(dst, src, identity)
	default:
		return fmt.Errorf("%w: unsupported scheme %s", kerrors.ErrDecryptionFailure, c.scheme)
	}
}

func decryptAge(dst io.Writer, src io.Reader, identity Identity) error {
	if identity == nil {
		return fmt.Errorf("%w: no identity configured", kerrors.ErrDecryptionFailure)
	}

	br := bufio.NewReaderSize(src, headerPeekSize)
	header, _ := br.Peek(headerPeekSize)
	if err := checkHeader(header); err != nil {
		return err
	}

	r, err := age.Decrypt(br, identity)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrDecryptionFailure, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("%w: reading envelope: %v", kerrors.ErrDecryptionFailure, err)
	}
	return nil
}

// checkHeader rejects envelopes that are not recipient-based age files.
func checkHeader(header []byte) error {
	lines := bytes.Split(header, []byte("\n"))
	if len(lines) == 0 || string(lines[0]) != ageVersionLine {
		return fmt.Errorf("%w: not an age envelope", kerrors.ErrDecryptionFailure)
	}

	for _, line := range lines[1:] {
		if bytes.HasPrefix(line, []byte("---")) {
			break
		}
		if bytes.HasPrefix(line, []byte("-> scrypt")) {
			return fmt.Errorf("%w: passphrase-encrypted files are not supported", kerrors.ErrDecryptionFailure)
		}
	}
	return nil
}

// EncryptFile encrypts input into output.
func (c *Codec) EncryptFile(input, output string) error {
	if len(c.recipients) == 0 {
		return fmt.Errorf("%w: no recipients configured", kerrors.ErrEncryptionFailure)
	}

	in, err := os.Open(input)
	if err != nil {
		return kerrors.IO("opening", input, err)
	}
	defer in.Close()

	// The envelope is staged next to output so a failed run leaves any
	// existing copy untouched.
	out, err := os.CreateTemp(filepath.Dir(output), ".confect-*")
	if err != nil {
		return kerrors.IO("creating", output, err)
	}
	staged := out.Name()
	defer os.Remove(staged)

	if err := c.Encrypt(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return kerrors.IO("closing", output, err)
	}
	if err := os.Rename(staged, output); err != nil {
		return kerrors.IO("renaming", output, err)
	}
	return nil
}

// DecryptFile decrypts input into output with identity.
func (c *Codec) DecryptFile(input, output string, identity Identity) error {
	in, err := os.Open(input)
	if err != nil {
		return kerrors.IO("opening", input, err)
	}
	defer in.Close()

	var plaintext bytes.Buffer
	if err := c.Decrypt(&plaintext, in, identity); err != nil {
		return err
	}

	// #nosec G306 -- final permissions are applied from captured metadata
	if err := os.WriteFile(output, plaintext.Bytes(), 0644); err != nil {
		return kerrors.IO("writing", output, err)
	}
	return nil
}

// IsEncrypted reports whether path starts with the age envelope tag.
func IsEncrypted(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	prefix := make([]byte, prefixLength)
	if _, err := io.ReadFull(file, prefix); err != nil {
		return false
	}
	return bytes.HasPrefix(prefix, []byte(encryptedTag))
}
