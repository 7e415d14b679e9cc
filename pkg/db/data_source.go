package db

import (
	"encoding/json"

	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/types"
)

const (
	dataSourceBucket = "data-source"
)

// PutDataSource records which feed filled the bucket bktName.
func (dbc Config) PutDataSource(tx *bolt.Tx, bktName string, source types.DataSource) error {
	if err := dbc.put(tx, dataSourceBucket, bktName, source); err != nil {
		return oops.With("root_bucket", dataSourceBucket).With("bucket_name", bktName).Wrapf(err, "failed to put data source")
	}
	return nil
}

func (dbc Config) GetDataSource(bktName string) (types.DataSource, error) {
	eb := oops.With("root_bucket", dataSourceBucket).With("bucket_name", bktName)
	b, err := dbc.get(dataSourceBucket, bktName)
	if err != nil {
		return types.DataSource{}, eb.Wrapf(err, "failed to get data source")
	} else if b == nil {
		return types.DataSource{}, nil
	}

	var source types.DataSource
	if err = json.Unmarshal(b, &source); err != nil {
		return types.DataSource{}, eb.Wrapf(err, "json unmarshal error")
	}
	return source, nil
}
