package db

import (
	"encoding/json"

	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/types"
)

const (
	definitionBucket = "definition"
)

func (dbc Config) PutDefinition(tx *bolt.Tx, def types.Definition) error {
	if err := dbc.put(tx, definitionBucket, def.Name, def); err != nil {
		return oops.With("definition", def.Name).Wrapf(err, "failed to put definition")
	}
	return nil
}

func (dbc Config) GetDefinition(name string) (types.Definition, error) {
	eb := oops.With("definition", name)
	value, err := dbc.get(definitionBucket, name)
	if err != nil {
		return types.Definition{}, eb.Wrapf(err, "failed to get definition")
	} else if value == nil {
		return types.Definition{}, eb.Errorf("no such definition")
	}
	return decodeDefinition(name, value)
}

func (dbc Config) ForEachDefinition(fn func(def types.Definition) error) error {
	err := db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(definitionBucket))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, v []byte) error {
			def, err := decodeDefinition(string(k), v)
			if err != nil {
				return err
			}
			return fn(def)
		})
	})
	if err != nil {
		return oops.With("bucket_name", definitionBucket).Wrapf(err, "for each error")
	}
	return nil
}

func (dbc Config) DeleteDefinitionBucket() error {
	return dbc.deleteBucket(definitionBucket)
}

// decodeDefinition restores the back-references of the owned sub-objects,
// which are not serialized.
func decodeDefinition(name string, value []byte) (types.Definition, error) {
	var def types.Definition
	if err := json.Unmarshal(value, &def); err != nil {
		return types.Definition{}, oops.With("definition", name).Wrapf(err, "json unmarshal error")
	}
	if def.LossType != nil {
		def.LossType.Definition = def.Name
	}
	if def.RangeType != nil {
		def.RangeType.Definition = def.Name
	}
	return def, nil
}
