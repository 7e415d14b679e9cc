package vulndb

import (
	"golang.org/x/xerrors"

	"github.com/secincident/incident-db/pkg/db"
)

type fullDB struct {
	*Core
}

func (f fullDB) Build(targets []string) error {
	if err := f.Insert(targets); err != nil {
		return xerrors.Errorf("insert error: %w", err)
	}

	if err := f.stamp(db.TypeFull); err != nil {
		return xerrors.Errorf("metadata error: %w", err)
	}
	return nil
}
