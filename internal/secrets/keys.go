// Package secrets keeps provider and LLM API keys in the OS keychain, so
// they survive without living in shell profiles or config files.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "scout-engine"

// Known key names accepted by `scout secret`.
const (
	KeySerpAPI = "serpapi"
	KeyBrave   = "brave"
	KeyGemini  = "gemini"
)

func validName(name string) error {
	switch name {
	case KeySerpAPI, KeyBrave, KeyGemini:
		return nil
	}
	return fmt.Errorf("unknown secret %q (serpapi, brave, gemini)", name)
}

// Get returns the stored key, or "" when the keychain has nothing. Env vars
// win over the keychain; the caller checks those first.
func Get(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	v, err := keyring.Get(KeyringService, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func Set(name, value string) error {
	if err := validName(name); err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

func Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return keyring.Delete(KeyringService, name)
}

// Fill populates missing config secrets from the keychain. Errors from an
// absent keychain backend are soft; the env path still works.
func Fill(serp, brave, gemini *string) {
	if *serp == "" {
		if v, err := Get(KeySerpAPI); err == nil {
			*serp = v
		}
	}
	if *brave == "" {
		if v, err := Get(KeyBrave); err == nil {
			*brave = v
		}
	}
	if *gemini == "" {
		if v, err := Get(KeyGemini); err == nil {
			*gemini = v
		}
	}
}
