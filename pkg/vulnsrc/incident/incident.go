package incident

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/sheet"
	"github.com/secincident/incident-db/pkg/types"
	"github.com/secincident/incident-db/pkg/utils"
)

const (
	incidentDir      = "incident"
	socioeconomicDir = "socioeconomic"

	// mappingFile renames spreadsheet headers of the CSV files in the same directory.
	mappingFile = "mapping.yaml"

	dateLayout = "2006-01-02"
)

var (
	ErrMissingField = xerrors.New("missing mandatory field")
	ErrInvalidField = xerrors.New("invalid field")

	incidentSource = types.DataSource{
		ID:   "incident",
		Name: "Security incident spreadsheets",
	}
	indicatorSource = types.DataSource{
		ID:   "socioeconomic",
		Name: "Socioeconomic indicator spreadsheets",
	}
)

type VulnSrc struct {
	dbc    db.Operation
	logger *log.Logger
}

func NewVulnSrc() VulnSrc {
	return VulnSrc{
		dbc:    db.Config{},
		logger: log.WithPrefix(incidentDir),
	}
}

func (vs VulnSrc) Name() types.SourceID {
	return incidentSource.ID
}

func (vs VulnSrc) Update(dir string) error {
	eb := oops.In(incidentDir).With("cache_dir", dir)

	var incidents []types.Incident
	err := vs.walk(utils.FeedDir(dir, incidentDir), func(row sheet.Row) error {
		incident, err := parseIncident(row)
		if err != nil {
			return err
		}
		incidents = append(incidents, incident)
		return nil
	})
	if err != nil {
		return eb.Wrapf(err, "incident walk error")
	}

	// Socioeconomic indicators are optional.
	var indicators []types.Indicator
	indicatorDir := utils.FeedDir(dir, socioeconomicDir)
	if ok, err := utils.Exists(indicatorDir); err != nil {
		return eb.Wrapf(err, "stat error")
	} else if ok {
		err = vs.walk(indicatorDir, func(row sheet.Row) error {
			indicator, err := parseIndicator(row)
			if err != nil {
				return err
			}
			indicators = append(indicators, indicator)
			return nil
		})
		if err != nil {
			return eb.Wrapf(err, "socioeconomic walk error")
		}
	} else {
		vs.logger.Info("No socioeconomic datasets", log.DirPath(indicatorDir))
	}

	if err = vs.save(incidents, indicators); err != nil {
		return eb.Wrapf(err, "save error")
	}
	return nil
}

// walk calls fn for every data row of every CSV file in dir.
func (vs VulnSrc) walk(dir string, fn func(row sheet.Row) error) error {
	var mapping sheet.Mapping
	mappingPath := filepath.Join(dir, mappingFile)
	if ok, err := utils.Exists(mappingPath); err != nil {
		return oops.Wrapf(err, "stat error")
	} else if ok {
		if mapping, err = sheet.LoadMapping(mappingPath); err != nil {
			return err
		}
		vs.logger.Debug("Loaded column mapping", log.FilePath(mappingPath), log.Int("columns", len(mapping)))
	}

	return utils.FileWalk(dir, func(r io.Reader, path string) error {
		eb := oops.With("file_path", path)
		reader, err := sheet.NewCSVReader(r, mapping)
		if err != nil {
			return eb.Wrapf(err, "failed to open sheet")
		}

		var n int
		for {
			row, err := reader.Next()
			if errors.Is(err, io.EOF) {
				break
			} else if err != nil {
				return eb.Wrapf(err, "failed to read sheet")
			}
			if err = fn(row); err != nil {
				return eb.With("row", row.Number).Wrapf(err, "invalid row")
			}
			n++
		}
		vs.logger.Debug("Read dataset", log.Dataset(filepath.Base(path)), log.Int("rows", n))
		return nil
	}, ".csv")
}

func (vs VulnSrc) save(incidents []types.Incident, indicators []types.Indicator) error {
	vs.logger.Info("Saving incident datasets",
		log.Int("incidents", len(incidents)), log.Int("indicators", len(indicators)))
	err := vs.dbc.BatchUpdate(func(tx *bolt.Tx) error {
		return vs.commit(tx, incidents, indicators)
	})
	if err != nil {
		return oops.Wrapf(err, "batch update error")
	}
	return nil
}

func (vs VulnSrc) commit(tx *bolt.Tx, incidents []types.Incident, indicators []types.Indicator) error {
	if err := vs.dbc.PutDataSource(tx, incidentDir, incidentSource); err != nil {
		return oops.Wrapf(err, "failed to put data source")
	}
	for _, incident := range incidents {
		if err := vs.dbc.PutIncident(tx, incident); err != nil {
			return oops.Wrapf(err, "failed to put incident")
		}
	}

	if len(indicators) == 0 {
		return nil
	}
	if err := vs.dbc.PutDataSource(tx, socioeconomicDir, indicatorSource); err != nil {
		return oops.Wrapf(err, "failed to put data source")
	}
	for _, indicator := range indicators {
		if err := vs.dbc.PutIndicator(tx, indicator); err != nil {
			return oops.Wrapf(err, "failed to put indicator")
		}
	}
	return nil
}

func parseIncident(row sheet.Row) (types.Incident, error) {
	incident := types.Incident{
		ID:      row.Get("id"),
		Country: row.Get("country"),
		Sector:  row.Get("sector"),
		Actor:   row.Get("actor"),
		Summary: row.Get("summary"),
	}
	if incident.ID == "" {
		return types.Incident{}, oops.With("field", "id").Wrap(ErrMissingField)
	}

	if v := row.Get("date"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return types.Incident{}, oops.With("field", "date").With("value", v).Wrapf(ErrInvalidField, "%s", err)
		}
		incident.Date = &date
	}

	if v := row.Get("loss"); v != "" {
		loss, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return types.Incident{}, oops.With("field", "loss").With("value", v).Wrapf(ErrInvalidField, "%s", err)
		}
		incident.Loss = &loss
	}

	// Names are separated by ";" since "," already separates cells.
	incident.Definitions = lo.Uniq(lo.Compact(lo.Map(strings.Split(row.Get("definitions"), ";"),
		func(name string, _ int) string {
			return strings.ToUpper(strings.TrimSpace(name))
		})))
	if len(incident.Definitions) == 0 {
		incident.Definitions = nil
	}
	return incident, nil
}

func parseIndicator(row sheet.Row) (types.Indicator, error) {
	indicator := types.Indicator{
		Country: row.Get("country"),
		Name:    row.Get("indicator"),
		Unit:    row.Get("unit"),
	}
	if indicator.Country == "" {
		return types.Indicator{}, oops.With("field", "country").Wrap(ErrMissingField)
	} else if indicator.Name == "" {
		return types.Indicator{}, oops.With("field", "indicator").Wrap(ErrMissingField)
	}

	year, err := strconv.Atoi(row.Get("year"))
	if err != nil {
		return types.Indicator{}, oops.With("field", "year").With("value", row.Get("year")).Wrapf(ErrInvalidField, "%s", err)
	}
	indicator.Year = year

	value, err := strconv.ParseFloat(row.Get("value"), 64)
	if err != nil {
		return types.Indicator{}, oops.With("field", "value").With("value", row.Get("value")).Wrapf(ErrInvalidField, "%s", err)
	}
	indicator.Value = value
	return indicator, nil
}
