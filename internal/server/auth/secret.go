package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/fluxpad/fluxpad/internal/filex"
)

// secretByteLen is the entropy of a generated signing secret before encoding.
const secretByteLen = 48

// LoadOrCreateSecret resolves the JWT signing secret for this process.
//
// If explicit is non-empty it wins (typically set via config for tests or
// orchestrated deployments). Otherwise the secret is read from path; if the
// file does not exist, a new high-entropy secret is generated, persisted with
// mode 0600, and returned. Replacing the file invalidates all outstanding
// tokens, which is the accepted rotation path.
func LoadOrCreateSecret(explicit string, path string) ([]byte, error) {
	if explicit != "" {
		return []byte(explicit), nil
	}

	secret, err := filex.ReadOrCreate(path, 0o600, func() ([]byte, error) {
		buf := make([]byte, secretByteLen)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generating secret: %w", err)
		}
		return []byte(base64.RawURLEncoding.EncodeToString(buf)), nil
	})
	if err != nil {
		return nil, err
	}

	return secret, nil
}
