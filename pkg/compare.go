package pkg

import (
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"github.com/urfave/cli"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

// comparedBuckets are the top-level buckets whose values are diffed between two builds.
var comparedBuckets = []string{
	"definition",
	"severity",
	"incident",
}

func compare(c *cli.Context) error {
	oldValues, err := readFile(c.String("old-file"))
	if err != nil {
		return xerrors.Errorf("old db error: %w", err)
	}
	newValues, err := readFile(c.String("new-file"))
	if err != nil {
		return xerrors.Errorf("new db error: %w", err)
	}

	diffs := compareValues(c.App.Writer, oldValues, newValues)
	if diffs > 0 && c.Bool("exit-code") {
		return xerrors.Errorf("%d differences found", diffs)
	}
	return nil
}

func compareValues(w io.Writer, oldValues, newValues map[string]map[string]string) int {
	var diffs int
	for _, bkt := range comparedBuckets {
		oldKV, newKV := oldValues[bkt], newValues[bkt]
		fmt.Fprintf(w, "=== %s: %d in old DB, %d in new DB ===\n", bkt, len(oldKV), len(newKV))

		keys := lo.Uniq(append(lo.Keys(oldKV), lo.Keys(newKV)...))
		slices.Sort(keys)
		for _, key := range keys {
			oldV, inOld := oldKV[key]
			newV, inNew := newKV[key]
			switch {
			case !inNew:
				fmt.Fprintf(w, "%s %s does not exist in new DB\n", bkt, key)
			case !inOld:
				fmt.Fprintf(w, "%s %s is new\n", bkt, key)
			case oldV != newV:
				fmt.Fprintf(w, "%s %s is different\n", bkt, key)
			default:
				continue
			}
			diffs++
		}
	}
	return diffs
}

func readFile(file string) (map[string]map[string]string, error) {
	db, err := bolt.Open(file, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, xerrors.Errorf("failed to open %s: %w", file, err)
	}
	defer db.Close()

	values := map[string]map[string]string{}
	err = db.View(func(tx *bolt.Tx) error {
		for _, name := range comparedBuckets {
			bkt := tx.Bucket([]byte(name))
			if bkt == nil {
				continue
			}
			kv := map[string]string{}
			if err := bkt.ForEach(func(k, v []byte) error {
				kv[string(k)] = string(v)
				return nil
			}); err != nil {
				return err
			}
			values[name] = kv
		}
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to read %s: %w", file, err)
	}
	return values, nil
}
