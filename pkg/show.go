package pkg

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/secincident/incident-db/pkg/db"
	"github.com/secincident/incident-db/pkg/types"
)

func show(c *cli.Context) error {
	name := strings.TrimSpace(c.Args().First())
	if name == "" {
		return xerrors.New("definition name is required")
	}

	if err := db.Init(c.String("cache-dir")); err != nil {
		return xerrors.Errorf("db init error: %w", err)
	}
	defer db.Close()

	dbc := db.Config{}
	severity, err := dbc.GetSeverity(name)
	if err != nil {
		return xerrors.Errorf("lookup error: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s (%s)\n", name, types.ColorizeSeverity(severity))

	md, err := dbc.GetMetadata()
	if err == nil && md.Type == db.TypeLight {
		fmt.Fprintln(w, "Details are not available in a light database.")
		return nil
	}

	def, err := dbc.GetDefinition(name)
	if err != nil {
		return xerrors.Errorf("lookup error: %w", err)
	}
	printDefinition(w, def)
	return nil
}

func printDefinition(w io.Writer, def types.Definition) {
	if def.Rejected {
		fmt.Fprintln(w, "Rejected")
	}
	if def.Published != nil {
		fmt.Fprintf(w, "Published: %s\n", def.Published.Format("2006-01-02"))
	}
	if def.CvssBaseScore != nil {
		fmt.Fprintf(w, "CVSS base score: %.1f\n", *def.CvssBaseScore)
	}
	if def.AccessVector != types.AccessVectorUnknown {
		fmt.Fprintf(w, "Access vector: %s\n", def.AccessVector)
	}
	for _, d := range []string{def.PrimaryDescription, def.SecondaryDescription} {
		if d != "" {
			fmt.Fprintf(w, "\n%s\n", d)
		}
	}
	for _, ref := range def.References {
		fmt.Fprintf(w, "  - %s\n", ref.URL)
	}
}
