package debian

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/gopenpgp/v3/crypto"
)

var (
	errNoKeyrings     = errors.New("no keyring provided")
	errEmptyCleartext = errors.New("clearsigned message has no content")
)

// LoadKeyRing reads armored or binary public keys from keyringPaths into a
// single key ring. Empty entries are skipped.
func LoadKeyRing(keyringPaths []string) (*crypto.KeyRing, error) {
	keyRing, err := crypto.NewKeyRing(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create key ring: %w", err)
	}

	loaded := 0
	for _, keyringPath := range keyringPaths {
		trimmed := strings.TrimSpace(keyringPath)
		if trimmed == "" {
			continue
		}

		data, err := os.ReadFile(filepath.Clean(trimmed))
		if err != nil {
			return nil, fmt.Errorf("unable to read keyring %s: %w", trimmed, err)
		}

		key, err := parsePublicKey(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse keyring %s: %w", trimmed, err)
		}

		if err := keyRing.AddKey(key); err != nil {
			return nil, fmt.Errorf("unable to add key from %s: %w", trimmed, err)
		}
		loaded++
	}

	if loaded == 0 {
		return nil, errNoKeyrings
	}

	return keyRing, nil
}

func parsePublicKey(data []byte) (*crypto.Key, error) {
	if bytes.Contains(data, []byte("-----BEGIN PGP")) {
		return crypto.NewKeyFromArmored(string(data))
	}
	return crypto.NewKey(data)
}

// VerifyClearsigned checks a clearsigned message against the keys found in
// keyringPaths and returns the signed cleartext.
func VerifyClearsigned(data []byte, keyringPaths []string) ([]byte, error) {
	keyRing, err := LoadKeyRing(keyringPaths)
	if err != nil {
		return nil, err
	}

	verifier, err := crypto.PGP().Verify().VerificationKeys(keyRing).New()
	if err != nil {
		return nil, fmt.Errorf("unable to create verifier: %w", err)
	}

	result, err := verifier.VerifyCleartext(data)
	if err != nil {
		return nil, fmt.Errorf("unable to read clearsigned message: %w", err)
	}

	if sigErr := result.SignatureError(); sigErr != nil {
		return nil, sigErr
	}

	return result.Cleartext(), nil
}

// ClearsignedContent returns the cleartext of a clearsigned message without
// checking its signature.
func ClearsignedContent(data []byte) ([]byte, error) {
	keyRing, err := crypto.NewKeyRing(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create key ring: %w", err)
	}

	verifier, err := crypto.PGP().Verify().VerificationKeys(keyRing).New()
	if err != nil {
		return nil, fmt.Errorf("unable to create verifier: %w", err)
	}

	// The signature error is expected: no key can match an empty ring.
	result, err := verifier.VerifyCleartext(data)
	if err != nil {
		return nil, fmt.Errorf("unable to read clearsigned message: %w", err)
	}

	cleartext := result.Cleartext()
	if len(cleartext) == 0 {
		return nil, errEmptyCleartext
	}

	return cleartext, nil
}
