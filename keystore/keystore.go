package keystore

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
)

var (
	// ErrKeyNotFound is returned when a store holds no key for the
	// requested KeyID.
	ErrKeyNotFound = errors.New("key not found")

	// ErrScriptNotFound is returned when a store holds no script for the
	// requested ScriptID.
	ErrScriptNotFound = errors.New("script not found")
)

// Key is a private key together with the serialization its public key is
// identified by.
type Key struct {
	PrivKey    *btcec.PrivateKey
	Compressed bool
}

// NewKey returns a Key for privKey.
func NewKey(privKey *btcec.PrivateKey, compressed bool) *Key {
	return &Key{PrivKey: privKey, Compressed: compressed}
}

// SerializedPubKey returns the public key serialized according to
// k.Compressed.
func (k *Key) SerializedPubKey() []byte {
	return k.PrivKey.PubKey().Serialize(k.Compressed)
}

// KeyID returns the identity of the key's public key.
func (k *Key) KeyID() util.KeyID {
	return util.NewKeyID(k.SerializedPubKey())
}

// KeyStore is a source of private keys.
type KeyStore interface {
	// GetKey returns the key identified by id, or an error wrapping
	// ErrKeyNotFound.
	GetKey(id util.KeyID) (*Key, error)

	// HaveKey returns whether the store holds the key identified by id.
	HaveKey(id util.KeyID) bool
}

// ScriptStore is a source of redeem scripts.
type ScriptStore interface {
	// GetScript returns the script identified by id, or an error wrapping
	// ErrScriptNotFound.
	GetScript(id util.ScriptID) ([]byte, error)

	// HaveScript returns whether the store holds the script identified
	// by id.
	HaveScript(id util.ScriptID) bool
}

// Store holds both keys and scripts, as a wallet does.
type Store interface {
	KeyStore
	ScriptStore
}

// KeyClosure implements KeyStore with a closure.
type KeyClosure func(util.KeyID) (*Key, error)

// GetKey implements KeyStore by returning the result of calling the closure.
func (kc KeyClosure) GetKey(id util.KeyID) (*Key, error) {
	return kc(id)
}

// HaveKey implements KeyStore by calling the closure.
func (kc KeyClosure) HaveKey(id util.KeyID) bool {
	_, err := kc(id)
	return err == nil
}

// ScriptClosure implements ScriptStore with a closure.
type ScriptClosure func(util.ScriptID) ([]byte, error)

// GetScript implements ScriptStore by returning the result of calling the
// closure.
func (sc ScriptClosure) GetScript(id util.ScriptID) ([]byte, error) {
	return sc(id)
}

// HaveScript implements ScriptStore by calling the closure.
func (sc ScriptClosure) HaveScript(id util.ScriptID) bool {
	_, err := sc(id)
	return err == nil
}

// BasicKeyStore is an in-memory Store safe for concurrent use.
type BasicKeyStore struct {
	mtx     sync.RWMutex
	keys    map[util.KeyID]*Key
	scripts map[util.ScriptID][]byte
}

// NewBasicKeyStore returns an empty BasicKeyStore.
func NewBasicKeyStore() *BasicKeyStore {
	return &BasicKeyStore{
		keys:    make(map[util.KeyID]*Key),
		scripts: make(map[util.ScriptID][]byte),
	}
}

// AddKey stores key and returns its identity.
func (s *BasicKeyStore) AddKey(key *Key) util.KeyID {
	id := key.KeyID()

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.keys[id] = key
	return id
}

// AddScript stores a redeem script and returns its identity. Scripts larger
// than a single script element can never be redeemed and are rejected.
func (s *BasicKeyStore) AddScript(script []byte) (util.ScriptID, error) {
	if err := ValidateScript(script); err != nil {
		return util.ScriptID{}, err
	}
	id := util.NewScriptID(script)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.scripts[id] = append([]byte(nil), script...)
	return id, nil
}

// GetKey implements KeyStore.
func (s *BasicKeyStore) GetKey(id util.KeyID) (*Key, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	key, ok := s.keys[id]
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "key %x", id)
	}
	return key, nil
}

// HaveKey implements KeyStore.
func (s *BasicKeyStore) HaveKey(id util.KeyID) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.keys[id]
	return ok
}

// GetScript implements ScriptStore.
func (s *BasicKeyStore) GetScript(id util.ScriptID) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	script, ok := s.scripts[id]
	if !ok {
		return nil, errors.Wrapf(ErrScriptNotFound, "script %x", id)
	}
	return script, nil
}

// HaveScript implements ScriptStore.
func (s *BasicKeyStore) HaveScript(id util.ScriptID) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.scripts[id]
	return ok
}

// ValidateScript returns an error for scripts no store accepts.
func ValidateScript(script []byte) error {
	if len(script) > txscript.MaxScriptElementSize {
		return errors.Errorf("redeem scripts larger than %d bytes are invalid",
			txscript.MaxScriptElementSize)
	}
	return nil
}
