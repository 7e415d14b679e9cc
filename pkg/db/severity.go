package db

import (
	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/types"
)

const (
	severityBucket = "severity"
)

// PutSeverity indexes the severity of a definition. The index survives light builds.
func (dbc Config) PutSeverity(tx *bolt.Tx, name string, severity types.Severity) error {
	bkt, err := tx.CreateBucketIfNotExists([]byte(severityBucket))
	if err != nil {
		return oops.With("bucket_name", severityBucket).Wrapf(err, "failed to create a bucket")
	}

	if err = bkt.Put([]byte(name), []byte(severity.String())); err != nil {
		return oops.With("definition", name).Wrapf(err, "severity put error")
	}
	return nil
}

func (dbc Config) GetSeverity(name string) (types.Severity, error) {
	eb := oops.With("definition", name)
	value, err := dbc.get(severityBucket, name)
	if err != nil {
		return types.SeverityUnknown, eb.Wrapf(err, "failed to get the severity")
	} else if value == nil {
		return types.SeverityUnknown, eb.Errorf("no such definition")
	}

	severity, err := types.NewSeverity(string(value))
	if err != nil {
		return types.SeverityUnknown, eb.Wrapf(err, "invalid severity")
	}
	return severity, nil
}

func (dbc Config) ForEachSeverity(fn func(name string, severity types.Severity) error) error {
	err := db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(severityBucket))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(name, v []byte) error {
			severity, err := types.NewSeverity(string(v))
			if err != nil {
				return oops.With("definition", string(name)).Wrapf(err, "unknown severity")
			}
			return fn(string(name), severity)
		})
	})
	if err != nil {
		return oops.With("bucket_name", severityBucket).Wrapf(err, "severity for each error")
	}
	return nil
}
