package ldbkeystore

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/storage"
	ldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/keystore"
	"github.com/tposnet/tposd/util"
)

var (
	keyPrefix    = []byte("k/")
	scriptPrefix = []byte("s/")
)

const (
	compressedFlag   = 0x01
	uncompressedFlag = 0x00
)

// Store is a keystore.Store persisted in leveldb. Keys live under the "k/"
// prefix as the 32-byte scalar followed by a compression flag, and scripts
// under the "s/" prefix.
type Store struct {
	ldb *leveldb.DB
}

// Open opens the key store at path, creating it if it doesn't exist.
func Open(path string) (*Store, error) {
	ldb, err := leveldb.OpenFile(path, Options())

	// If the database is corrupted, attempt to recover.
	var corrupted *ldbErrors.ErrCorrupted
	if errors.As(err, &corrupted) {
		log.Warnf("LevelDB corruption detected for path %s: %s",
			path, err)
		ldb, err = leveldb.RecoverFile(path, Options())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to recover key store at %s", path)
		}
		log.Warnf("LevelDB recovered from corruption for path %s",
			path)
	}

	// If the database cannot be opened for any other
	// reason, return the error as-is.
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open key store at %s", path)
	}

	log.Debugf("Opened key store at %s", path)
	return &Store{ldb: ldb}, nil
}

// openStorage opens a key store over an arbitrary leveldb storage.
func openStorage(stor storage.Storage) (*Store, error) {
	ldb, err := leveldb.Open(stor, Options())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Store{ldb: ldb}, nil
}

// Close closes the key store.
func (s *Store) Close() error {
	return errors.WithStack(s.ldb.Close())
}

func keyDBKey(id util.KeyID) []byte {
	return append(append(make([]byte, 0, len(keyPrefix)+len(id)), keyPrefix...), id[:]...)
}

func scriptDBKey(id util.ScriptID) []byte {
	return append(append(make([]byte, 0, len(scriptPrefix)+len(id)), scriptPrefix...), id[:]...)
}

// AddKey persists key and returns its identity.
func (s *Store) AddKey(key *keystore.Key) (util.KeyID, error) {
	id := key.KeyID()

	value := make([]byte, 0, btcec.PrivKeyBytesLen+1)
	value = append(value, key.PrivKey.Serialize()...)
	if key.Compressed {
		value = append(value, compressedFlag)
	} else {
		value = append(value, uncompressedFlag)
	}

	err := s.ldb.Put(keyDBKey(id), value, nil)
	if err != nil {
		return util.KeyID{}, errors.Wrapf(err, "failed to store key %x", id)
	}
	return id, nil
}

// AddScript persists a redeem script and returns its identity.
func (s *Store) AddScript(script []byte) (util.ScriptID, error) {
	err := keystore.ValidateScript(script)
	if err != nil {
		return util.ScriptID{}, err
	}
	id := util.NewScriptID(script)

	err = s.ldb.Put(scriptDBKey(id), script, nil)
	if err != nil {
		return util.ScriptID{}, errors.Wrapf(err, "failed to store script %x", id)
	}
	return id, nil
}

// GetKey implements keystore.KeyStore.
func (s *Store) GetKey(id util.KeyID) (*keystore.Key, error) {
	value, err := s.ldb.Get(keyDBKey(id), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(keystore.ErrKeyNotFound, "key %x", id)
		}
		return nil, errors.Wrapf(err, "failed to read key %x", id)
	}
	return deserializeKey(value)
}

func deserializeKey(value []byte) (*keystore.Key, error) {
	if len(value) != btcec.PrivKeyBytesLen+1 {
		return nil, errors.Errorf("stored key has %d bytes, want %d",
			len(value), btcec.PrivKeyBytesLen+1)
	}
	privKey, err := btcec.PrivKeyFromBytes(value[:btcec.PrivKeyBytesLen])
	if err != nil {
		return nil, err
	}
	return keystore.NewKey(privKey, value[btcec.PrivKeyBytesLen] == compressedFlag), nil
}

// HaveKey implements keystore.KeyStore. Read failures count as absence.
func (s *Store) HaveKey(id util.KeyID) bool {
	has, err := s.ldb.Has(keyDBKey(id), nil)
	if err != nil {
		log.Warnf("Failed to look up key %x: %s", id, err)
		return false
	}
	return has
}

// GetScript implements keystore.ScriptStore.
func (s *Store) GetScript(id util.ScriptID) ([]byte, error) {
	script, err := s.ldb.Get(scriptDBKey(id), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(keystore.ErrScriptNotFound, "script %x", id)
		}
		return nil, errors.Wrapf(err, "failed to read script %x", id)
	}
	return script, nil
}

// HaveScript implements keystore.ScriptStore. Read failures count as
// absence.
func (s *Store) HaveScript(id util.ScriptID) bool {
	has, err := s.ldb.Has(scriptDBKey(id), nil)
	if err != nil {
		log.Warnf("Failed to look up script %x: %s", id, err)
		return false
	}
	return has
}

// KeyIDs returns the identities of every stored key.
func (s *Store) KeyIDs() ([]util.KeyID, error) {
	iter := s.ldb.NewIterator(ldbUtil.BytesPrefix(keyPrefix), nil)
	defer iter.Release()

	var ids []util.KeyID
	for iter.Next() {
		var id util.KeyID
		copy(id[:], iter.Key()[len(keyPrefix):])
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}
	return ids, nil
}
