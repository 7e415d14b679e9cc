package vulndb

import (
	"golang.org/x/xerrors"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/types"
)

// lightDB keeps only the severity index of the definitions.
type lightDB struct {
	*Core
}

func (l lightDB) Build(targets []string) error {
	if err := l.Insert(targets); err != nil {
		return xerrors.Errorf("insert error: %w", err)
	}

	if err := l.verify(); err != nil {
		return xerrors.Errorf("verify error: %w", err)
	}

	// Remove unnecessary buckets
	if err := l.dbc.DeleteDefinitionBucket(); err != nil {
		return xerrors.Errorf("failed to delete definition bucket: %w", err)
	}

	if err := l.stamp(db.TypeLight); err != nil {
		return xerrors.Errorf("metadata error: %w", err)
	}
	return nil
}

// verify makes sure the severity index is readable before the definitions
// backing it are dropped.
func (l lightDB) verify() error {
	var n int
	err := l.dbc.ForEachSeverity(func(_ string, _ types.Severity) error {
		n++
		return nil
	})
	if err != nil {
		return xerrors.Errorf("failed to iterate severity: %w", err)
	}
	log.Debug("Verified severity index", log.Int("definitions", n))
	return nil
}
