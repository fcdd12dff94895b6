package ldbkeystore

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/keystore"
	"github.com/tposnet/tposd/util"
)

func prepareStoreForTest(t *testing.T) *Store {
	store, err := openStorage(storage.NewMemStorage())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func newTestKey(t *testing.T, compressed bool) *keystore.Key {
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return keystore.NewKey(privKey, compressed)
}

func TestStoreKeys(t *testing.T) {
	store := prepareStoreForTest(t)

	for _, compressed := range []bool{true, false} {
		key := newTestKey(t, compressed)
		id, err := store.AddKey(key)
		require.NoError(t, err)
		require.Equal(t, key.KeyID(), id)
		require.True(t, store.HaveKey(id))

		got, err := store.GetKey(id)
		require.NoError(t, err)
		require.Equal(t, compressed, got.Compressed)
		require.Equal(t, key.PrivKey.Serialize(), got.PrivKey.Serialize())
		require.Equal(t, id, got.KeyID())
	}

	ids, err := store.KeyIDs()
	require.NoError(t, err)
	require.Len(t, ids, 2)

	require.False(t, store.HaveKey(util.KeyID{}))
	_, err = store.GetKey(util.KeyID{})
	require.True(t, errors.Is(err, keystore.ErrKeyNotFound), "unexpected error: %v", err)
}

func TestStoreScripts(t *testing.T) {
	store := prepareStoreForTest(t)

	script := []byte{0x52, 0x21, 0x02, 0xae}
	id, err := store.AddScript(script)
	require.NoError(t, err)
	require.Equal(t, util.NewScriptID(script), id)
	require.True(t, store.HaveScript(id))

	got, err := store.GetScript(id)
	require.NoError(t, err)
	require.Equal(t, script, got)

	// Scripts and keys live in separate key spaces.
	require.False(t, store.HaveKey(util.KeyID(id)))

	_, err = store.GetScript(util.ScriptID{})
	require.True(t, errors.Is(err, keystore.ErrScriptNotFound), "unexpected error: %v", err)

	_, err = store.AddScript(make([]byte, 521))
	require.Error(t, err)
}

func TestStorePersists(t *testing.T) {
	path := t.TempDir()

	store, err := Open(path)
	require.NoError(t, err)
	key := newTestKey(t, true)
	id, err := store.AddKey(key)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	var ks keystore.KeyStore = reopened
	got, err := ks.GetKey(id)
	require.NoError(t, err)
	require.Equal(t, key.SerializedPubKey(), got.SerializedPubKey())
}
