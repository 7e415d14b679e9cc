package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/types"
)

type Type int

const (
	SchemaVersion = 1

	TypeFull Type = iota
	TypeLight
)

func (t Type) String() string {
	if t == TypeLight {
		return "light"
	}
	return "full"
}

const (
	metadataBucket = "incident-db"
	metadataKey    = "metadata"
)

var (
	db    *bolt.DB
	dbDir string
)

// Operation is the storage used by the importers.
type Operation interface {
	BatchUpdate(fn func(*bolt.Tx) error) error

	PutDataSource(tx *bolt.Tx, bktName string, source types.DataSource) error

	PutDefinition(tx *bolt.Tx, def types.Definition) error
	GetDefinition(name string) (types.Definition, error)
	ForEachDefinition(fn func(def types.Definition) error) error

	PutSeverity(tx *bolt.Tx, name string, severity types.Severity) error
	GetSeverity(name string) (types.Severity, error)

	PutIncident(tx *bolt.Tx, incident types.Incident) error
	GetIncident(id string) (types.Incident, error)
	PutIndicator(tx *bolt.Tx, indicator types.Indicator) error
	GetIndicator(country, name string, year int) (types.Indicator, error)

	SetMetadata(metadata Metadata) error
	GetMetadata() (Metadata, error)
}

type Metadata struct {
	Version    int
	Type       Type
	NextUpdate time.Time
	UpdatedAt  time.Time
	Counts     map[string]int `json:",omitempty"` // records per bucket
}

type Config struct {
}

func Init(cacheDir string) (err error) {
	dbPath := Path(cacheDir)
	dbDir = filepath.Dir(dbPath)
	if err = os.MkdirAll(dbDir, 0700); err != nil {
		return oops.With("dir", dbDir).Wrapf(err, "failed to mkdir")
	}

	log.Debug("Opening the database", log.FilePath(dbPath))
	db, err = bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return oops.With("file_path", dbPath).Wrapf(err, "failed to open db")
	}
	return nil
}

func Path(cacheDir string) string {
	return filepath.Join(Dir(cacheDir), "incident.db")
}

func Dir(cacheDir string) string {
	return filepath.Join(cacheDir, "db")
}

func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return oops.Wrapf(err, "failed to close DB")
	}
	return nil
}

func (dbc Config) GetMetadata() (Metadata, error) {
	value, err := dbc.get(metadataBucket, metadataKey)
	if err != nil {
		return Metadata{}, err
	} else if value == nil {
		return Metadata{}, oops.With("bucket_name", metadataBucket).Errorf("no metadata")
	}

	var metadata Metadata
	if err = json.Unmarshal(value, &metadata); err != nil {
		return Metadata{}, oops.Wrapf(err, "json unmarshal error")
	}
	return metadata, nil
}

func (dbc Config) SetMetadata(metadata Metadata) error {
	err := db.Update(func(tx *bolt.Tx) error {
		return dbc.put(tx, metadataBucket, metadataKey, metadata)
	})
	if err != nil {
		return oops.Wrapf(err, "failed to save metadata")
	}
	return nil
}

func (dbc Config) BatchUpdate(fn func(tx *bolt.Tx) error) error {
	if err := db.Batch(fn); err != nil {
		return oops.Wrapf(err, "error in batch update")
	}
	return nil
}

func (dbc Config) put(tx *bolt.Tx, bktName, key string, value any) error {
	eb := oops.With("bucket_name", bktName).With("key", key)
	bkt, err := tx.CreateBucketIfNotExists([]byte(bktName))
	if err != nil {
		return eb.Wrapf(err, "failed to create a bucket")
	}
	v, err := json.Marshal(value)
	if err != nil {
		return eb.Wrapf(err, "json marshal error")
	}
	return bkt.Put([]byte(key), v)
}

// get returns a copy of the value, or nil when the bucket or key is missing.
func (dbc Config) get(bktName, key string) (value []byte, err error) {
	err = db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bktName))
		if bkt == nil {
			return nil
		}
		if v := bkt.Get([]byte(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, oops.With("bucket_name", bktName).With("key", key).Wrapf(err, "failed to get data from db")
	}
	return value, nil
}

// Count returns the number of keys in a top-level bucket.
func (dbc Config) Count(bktName string) (int, error) {
	var n int
	err := db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bktName))
		if bkt == nil {
			return nil
		}
		n = bkt.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, oops.With("bucket_name", bktName).Wrapf(err, "failed to count keys")
	}
	return n, nil
}

func (dbc Config) deleteBucket(bktName string) error {
	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bktName)) == nil {
			return nil
		}
		if err := tx.DeleteBucket([]byte(bktName)); err != nil {
			return oops.With("bucket_name", bktName).Wrapf(err, "failed to delete bucket")
		}
		return nil
	})
}
