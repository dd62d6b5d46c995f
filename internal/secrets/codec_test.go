package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"filippo.io/age"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) (*Codec, Identity) {
	t.Helper()

	identity, recipient, err := GenerateKeypair()
	require.NoError(t, err)

	codec, err := NewCodec([]string{recipient})
	require.NoError(t, err)

	id, err := ParseIdentity(identity)
	require.NoError(t, err)

	return codec, id
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	codec, identity := newTestCodec(t)
	plaintext := []byte("root:$6$hash:19000:0:99999:7:::\n")

	var envelope bytes.Buffer
	require.NoError(t, codec.Encrypt(&envelope, bytes.NewReader(plaintext)))
	assert.True(t, bytes.HasPrefix(envelope.Bytes(), []byte(encryptedTag)))
	assert.NotContains(t, envelope.String(), "root:")

	var out bytes.Buffer
	require.NoError(t, codec.Decrypt(&out, bytes.NewReader(envelope.Bytes()), identity))
	assert.Equal(t, plaintext, out.Bytes())
}

func TestDecryptWithWrongIdentity(t *testing.T) {
	codec, _ := newTestCodec(t)
	_, other := newTestCodec(t)

	var envelope bytes.Buffer
	require.NoError(t, codec.Encrypt(&envelope, strings.NewReader("secret")))

	var out bytes.Buffer
	err := codec.Decrypt(&out, bytes.NewReader(envelope.Bytes()), other)
	assert.ErrorIs(t, err, kerrors.ErrDecryptionFailure)
}

func TestDecryptWithoutIdentity(t *testing.T) {
	codec, _ := newTestCodec(t)

	var envelope bytes.Buffer
	require.NoError(t, codec.Encrypt(&envelope, strings.NewReader("secret")))

	err := codec.Decrypt(&bytes.Buffer{}, bytes.NewReader(envelope.Bytes()), nil)
	assert.ErrorIs(t, err, kerrors.ErrDecryptionFailure)
}

func TestDecryptRejectsPassphraseEnvelope(t *testing.T) {
	codec, identity := newTestCodec(t)

	recipient, err := age.NewScryptRecipient("hunter2")
	require.NoError(t, err)
	recipient.SetWorkFactor(10)

	var envelope bytes.Buffer
	w, err := age.Encrypt(&envelope, recipient)
	require.NoError(t, err)
	_, err = w.Write([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = codec.Decrypt(&bytes.Buffer{}, bytes.NewReader(envelope.Bytes()), identity)
	require.ErrorIs(t, err, kerrors.ErrDecryptionFailure)
	assert.Contains(t, err.Error(), "passphrase")
}

func TestDecryptRejectsGarbage(t *testing.T) {
	codec, identity := newTestCodec(t)

	err := codec.Decrypt(&bytes.Buffer{}, strings.NewReader("not an envelope\n"), identity)
	assert.ErrorIs(t, err, kerrors.ErrDecryptionFailure)
}

func TestNewCodecSkipsBlankAndCommentLines(t *testing.T) {
	_, recipient, err := GenerateKeypair()
	require.NoError(t, err)

	codec, err := NewCodec([]string{"", "   ", "# team keys", recipient, "  # indented comment"})
	require.NoError(t, err)
	assert.Equal(t, 1, codec.Recipients())
	assert.Equal(t, SchemeAge, codec.Scheme())
}

func TestNewCodecInvalidRecipient(t *testing.T) {
	_, err := NewCodec([]string{"age1notarealkey"})
	assert.ErrorIs(t, err, kerrors.ErrEncryptionFailure)

	_, err = NewCodec([]string{"ssh-ed25519 AAAAgarbage"})
	assert.ErrorIs(t, err, kerrors.ErrEncryptionFailure)
}

func TestEncryptWithoutRecipients(t *testing.T) {
	codec, err := NewCodec(nil)
	require.NoError(t, err)

	err = codec.Encrypt(&bytes.Buffer{}, strings.NewReader("data"))
	assert.ErrorIs(t, err, kerrors.ErrEncryptionFailure)
}

func TestNewCodecFromFile(t *testing.T) {
	dir := t.TempDir()
	_, r1, err := GenerateKeypair()
	require.NoError(t, err)
	_, r2, err := GenerateKeypair()
	require.NoError(t, err)

	path := filepath.Join(dir, "recipients.txt")
	content := "# admins\n" + r1 + "\n\n" + r2 + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	codec, err := NewCodecFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, codec.Recipients())

	_, err = NewCodecFromFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, kerrors.ErrIO)
}

func TestEncryptFileDecryptFile(t *testing.T) {
	codec, identity := newTestCodec(t)
	dir := t.TempDir()

	plain := filepath.Join(dir, "shadow")
	sealed := filepath.Join(dir, "shadow.age")
	opened := filepath.Join(dir, "shadow.out")
	require.NoError(t, os.WriteFile(plain, []byte("secret contents\n"), 0600))

	require.NoError(t, codec.EncryptFile(plain, sealed))
	assert.True(t, IsEncrypted(sealed))
	assert.False(t, IsEncrypted(plain))

	info, err := os.Stat(sealed)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, codec.DecryptFile(sealed, opened, identity))
	data, err := os.ReadFile(opened)
	require.NoError(t, err)
	assert.Equal(t, "secret contents\n", string(data))
}

func TestEncryptFileFailureKeepsExistingOutput(t *testing.T) {
	codec, _ := newTestCodec(t)
	dir := t.TempDir()

	sealed := filepath.Join(dir, "shadow.age")
	require.NoError(t, os.WriteFile(sealed, []byte("old"), 0600))

	err := codec.EncryptFile(dir, sealed)
	assert.ErrorIs(t, err, kerrors.ErrEncryptionFailure)

	data, err := os.ReadFile(sealed)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIsEncryptedShortAndMissingFiles(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte("age-encryption"), 0600))
	assert.False(t, IsEncrypted(short))

	assert.False(t, IsEncrypted(filepath.Join(dir, "missing")))
	assert.False(t, IsEncrypted(dir))
}
