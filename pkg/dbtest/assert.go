package dbtest

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

var (
	ErrNoBucket = xerrors.New("no such bucket")
	ErrNoKey    = xerrors.New("no such key")
)

// JSONEq compares the JSON stored under the bucket path key with want.
func JSONEq(t *testing.T, dbPath string, key []string, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	wantByte, err := json.Marshal(want)
	require.NoError(t, err, msgAndArgs...)

	got, err := get(dbPath, key)
	require.NoError(t, err, msgAndArgs...)

	assert.JSONEq(t, string(wantByte), string(got), msgAndArgs...)
}

// NoBucket asserts that the bucket path does not exist.
func NoBucket(t *testing.T, dbPath string, buckets []string, msgAndArgs ...interface{}) {
	t.Helper()

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{ReadOnly: true})
	require.NoError(t, err, msgAndArgs...)
	defer db.Close()

	err = db.View(func(tx *bolt.Tx) error {
		_, err := bucket(tx, buckets)
		return err
	})
	assert.ErrorIs(t, err, ErrNoBucket, msgAndArgs...)
}

type bucketer interface {
	Bucket(name []byte) *bolt.Bucket
}

func bucket(tx *bolt.Tx, names []string) (*bolt.Bucket, error) {
	var b bucketer = tx
	for _, name := range names {
		if reflect.ValueOf(b).IsNil() {
			return nil, xerrors.Errorf("bucket error %v: %w", names, ErrNoBucket)
		}
		b = b.Bucket([]byte(name))
	}
	bkt, ok := b.(*bolt.Bucket)
	if !ok || bkt == nil {
		return nil, xerrors.Errorf("bucket error %v: %w", names, ErrNoBucket)
	}
	return bkt, nil
}

func get(dbPath string, keys []string) ([]byte, error) {
	if len(keys) < 2 {
		return nil, xerrors.Errorf("malformed keys: %v", keys)
	}
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var b []byte
	err = db.View(func(tx *bolt.Tx) error {
		bkts, key := keys[:len(keys)-1], keys[len(keys)-1]
		bkt, err := bucket(tx, bkts)
		if err != nil {
			return err
		}
		res := bkt.Get([]byte(key))
		if res == nil {
			return xerrors.Errorf("key error %v: %w", keys, ErrNoKey)
		}

		// Copy the returned value
		b = make([]byte, len(res))
		copy(b, res)
		return nil
	})
	return b, err
}
