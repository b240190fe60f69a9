package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName is the default keyring service identifier. Can be
	// overridden with QOP_KEYRING_SERVICE for test isolation.
	ServiceName = "qop"
	// AccountName is the keyring account identifier.
	AccountName = "tokens"
)

// Keeper persists the encoded token mapping as one unit. Load returns an
// empty mapping when nothing has been stored yet; a present but unreadable
// store fails with ErrCorrupt.
type Keeper interface {
	Load() (map[string]string, error)
	Store(map[string]string) error
	Name() string
}

// FileKeeper persists the mapping as a JSON object in a single file,
// created with 0600 permissions. Writes go through a temp file in the same
// directory followed by a rename, so readers never observe a partial file.
type FileKeeper struct {
	Path string
}

// DefaultAuthPath returns the default token file path, honoring the
// QOP_AUTH_PATH override.
func DefaultAuthPath() string {
	if p := os.Getenv("QOP_AUTH_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home is unavailable
		return filepath.Join(".", ".qop", "auth.json")
	}
	return filepath.Join(home, ".qop", "auth.json")
}

func (k *FileKeeper) Load() (map[string]string, error) {
	data, err := os.ReadFile(k.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, k.Path, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (k *FileKeeper) Store(m map[string]string) error {
	dir := filepath.Dir(k.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tokens: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".auth-*.json")
	if err != nil {
		return fmt.Errorf("creating temp token file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("restricting token file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing token file: %w", err)
	}
	if err := os.Rename(tmpName, k.Path); err != nil {
		return fmt.Errorf("replacing token file: %w", err)
	}
	cleanup = false
	return nil
}

func (k *FileKeeper) Name() string {
	return "file (" + k.Path + ")"
}

// KeyringKeeper persists the mapping as a JSON blob in the system keychain.
//
// Platform requirements:
//   - macOS: Keychain via the Security framework (works out of the box)
//   - Linux: requires libsecret (GNOME), kwallet (KDE), or pass (CLI)
//   - Windows: Windows Credential Manager (works out of the box)
//
// On headless machines without a keychain service, Load and Store fail;
// callers should fall back to a FileKeeper.
type KeyringKeeper struct {
	// Service overrides the keyring service name. Empty means ServiceName,
	// or the QOP_KEYRING_SERVICE environment variable when set.
	Service string
	// Account overrides the keyring account name. Empty means AccountName.
	Account string
}

func (k *KeyringKeeper) service() string {
	if k.Service != "" {
		return k.Service
	}
	if name := os.Getenv("QOP_KEYRING_SERVICE"); name != "" {
		return name
	}
	return ServiceName
}

func (k *KeyringKeeper) account() string {
	if k.Account != "" {
		return k.Account
	}
	return AccountName
}

func (k *KeyringKeeper) Load() (map[string]string, error) {
	blob, err := keyring.Get(k.service(), k.account())
	if err != nil {
		if err == keyring.ErrNotFound {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("keychain get: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(blob), &m); err != nil {
		return nil, fmt.Errorf("%w: keychain entry %s/%s: %v", ErrCorrupt, k.service(), k.account(), err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (k *KeyringKeeper) Store(m map[string]string) error {
	blob, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling tokens: %w", err)
	}
	if err := keyring.Set(k.service(), k.account(), string(blob)); err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

func (k *KeyringKeeper) Name() string {
	return "system keychain"
}

// MemKeeper keeps the mapping in process memory. It backs tests and
// ephemeral sessions that must not touch the host.
type MemKeeper struct {
	m map[string]string
}

func (k *MemKeeper) Load() (map[string]string, error) {
	out := make(map[string]string, len(k.m))
	for key, v := range k.m {
		out[key] = v
	}
	return out, nil
}

func (k *MemKeeper) Store(m map[string]string) error {
	k.m = make(map[string]string, len(m))
	for key, v := range m {
		k.m[key] = v
	}
	return nil
}

func (k *MemKeeper) Name() string {
	return "memory"
}
