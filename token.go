package qop

import (
	"sync"

	"github.com/qop-dev/qop/token"
)

// tokenState holds the session token store, created lazily so that library
// users who never touch tokens never touch the filesystem either.
var tokenState = struct {
	mu    sync.Mutex
	store *token.Store
}{}

func tokens() *token.Store {
	tokenState.mu.Lock()
	defer tokenState.mu.Unlock()
	if tokenState.store == nil {
		tokenState.store = token.NewStore(&token.FileKeeper{Path: token.DefaultAuthPath()})
	}
	return tokenState.store
}

// SetTokenKeeper replaces the keeper backing the session token store, for
// example with a token.KeyringKeeper or a token.MemKeeper. In-memory
// tokens survive the swap.
func SetTokenKeeper(k token.Keeper) {
	tokens().SetKeeper(k)
}

// SetToken stores an access token. With a device option the token is
// scoped to that device; otherwise it is stored at the provider level for
// the explicit or default provider. The mutation is written back to the
// persisted store unless WithPersist(false) is given. Returns a snapshot
// of the full token mapping.
func SetToken(tok string, opts ...Option) (map[string]string, error) {
	co := newCallOptions(opts)
	key, err := co.tokenKey()
	if err != nil {
		return nil, err
	}
	return tokens().Set(key, tok, co.persist)
}

// ReloadTokens re-reads the persisted token store and merges it as the
// baseline under the in-memory mapping; in-memory entries win on key
// collision. The merged result is written back unless WithPersist(false)
// is given. Returns a snapshot of the full token mapping.
func ReloadTokens(opts ...Option) (map[string]string, error) {
	co := newCallOptions(opts)
	return tokens().Reload(co.persist)
}

// GetToken returns the token stored for exactly the requested scope: the
// device-scoped key when a device option is given, the provider-level key
// otherwise. There is no fallback between the two scopes; an absent token
// returns "".
func GetToken(opts ...Option) (string, error) {
	co := newCallOptions(opts)
	key, err := co.tokenKey()
	if err != nil {
		return "", err
	}
	secret, _, err := tokens().Get(key)
	return secret, err
}

// Tokens returns a snapshot of the full current token mapping.
func Tokens() (map[string]string, error) {
	return tokens().All()
}

// tokenKey computes the credential key for the call's scope. A device
// option selects the device-scoped key; otherwise the explicit or default
// provider's key is used.
func (co *callOptions) tokenKey() (string, error) {
	if co.device != nil {
		dev, err := ResolveDevice(co.device, co.provider)
		if err != nil {
			return "", err
		}
		return dev.TokenKey(), nil
	}
	p, err := ResolveProvider(co.provider)
	if err != nil {
		return "", err
	}
	return p.TokenKey(), nil
}

// tokenForProvider returns the call's explicit token, or the stored
// provider-level token, or "" when neither exists.
func tokenForProvider(co *callOptions, p Provider) (string, error) {
	if co.token != "" {
		return co.token, nil
	}
	secret, _, err := tokens().Get(p.TokenKey())
	return secret, err
}

// tokenForDevice returns the call's explicit token, or the stored
// device-scoped token, or "" when neither exists. Provider-level tokens
// are deliberately not consulted here.
func tokenForDevice(co *callOptions, d Device) (string, error) {
	if co.token != "" {
		return co.token, nil
	}
	secret, _, err := tokens().Get(d.TokenKey())
	return secret, err
}
