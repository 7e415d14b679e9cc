package db

import (
	"encoding/json"
	"strconv"

	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"

	"github.com/secincident/incident-db/pkg/types"
)

const (
	incidentBucket  = "incident"
	indicatorBucket = "socioeconomic"
)

func (dbc Config) PutIncident(tx *bolt.Tx, incident types.Incident) error {
	if err := dbc.put(tx, incidentBucket, incident.ID, incident); err != nil {
		return oops.With("incident", incident.ID).Wrapf(err, "failed to put incident")
	}
	return nil
}

func (dbc Config) GetIncident(id string) (types.Incident, error) {
	eb := oops.With("incident", id)
	value, err := dbc.get(incidentBucket, id)
	if err != nil {
		return types.Incident{}, eb.Wrapf(err, "failed to get incident")
	} else if value == nil {
		return types.Incident{}, eb.Errorf("no such incident")
	}

	var incident types.Incident
	if err = json.Unmarshal(value, &incident); err != nil {
		return types.Incident{}, eb.Wrapf(err, "json unmarshal error")
	}
	return incident, nil
}

// PutIndicator stores an indicator under socioeconomic -> country -> name -> year.
func (dbc Config) PutIndicator(tx *bolt.Tx, indicator types.Indicator) error {
	eb := oops.With("country", indicator.Country).With("indicator", indicator.Name).With("year", indicator.Year)

	bkt, err := tx.CreateBucketIfNotExists([]byte(indicatorBucket))
	if err != nil {
		return eb.Wrapf(err, "failed to create a bucket")
	}
	for _, name := range []string{indicator.Country, indicator.Name} {
		if bkt, err = bkt.CreateBucketIfNotExists([]byte(name)); err != nil {
			return eb.Wrapf(err, "failed to create a nested bucket")
		}
	}

	v, err := json.Marshal(indicator)
	if err != nil {
		return eb.Wrapf(err, "json marshal error")
	}
	return bkt.Put([]byte(strconv.Itoa(indicator.Year)), v)
}

func (dbc Config) GetIndicator(country, name string, year int) (types.Indicator, error) {
	eb := oops.With("country", country).With("indicator", name).With("year", year)

	var value []byte
	err := db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(indicatorBucket))
		for _, n := range []string{country, name} {
			if bkt == nil {
				return nil
			}
			bkt = bkt.Bucket([]byte(n))
		}
		if bkt == nil {
			return nil
		}
		if v := bkt.Get([]byte(strconv.Itoa(year))); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return types.Indicator{}, eb.Wrapf(err, "failed to get indicator")
	} else if value == nil {
		return types.Indicator{}, eb.Errorf("no such indicator")
	}

	var indicator types.Indicator
	if err = json.Unmarshal(value, &indicator); err != nil {
		return types.Indicator{}, eb.Wrapf(err, "json unmarshal error")
	}
	return indicator, nil
}
