package pkg

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/secincident/incident-db/pkg/log"
	"github.com/secincident/incident-db/pkg/utils"
	"github.com/secincident/incident-db/pkg/vulnsrc"
)

func NewApp(version string) *cli.App {
	cacheDirFlag := cli.StringFlag{
		Name:   "cache-dir",
		Usage:  "cache directory path",
		Value:  utils.CacheDir(),
		EnvVar: "INCIDENT_DB_CACHE_DIR",
	}

	app := cli.NewApp()
	app.Name = "incident-db"
	app.Version = version
	app.Usage = "Security incident database builder"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		log.InitLogger(c.GlobalBool("debug"))
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:   "build",
			Usage:  "build database",
			Action: build,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "light",
					Usage: "drop definition details and keep only the severity index",
				},
				cli.StringSliceFlag{
					Name:  "only-update",
					Usage: fmt.Sprintf("update db only with the specified sources (%s)", strings.Join(vulnsrc.Names(), ", ")),
				},
				cli.DurationFlag{
					Name:  "update-interval",
					Usage: "interval until the next update, recorded in the metadata",
					Value: 24 * time.Hour,
				},
				cli.BoolFlag{
					Name:  "lenient-dates",
					Usage: "skip malformed published/modified dates instead of failing",
				},
				cacheDirFlag,
			},
		},
		{
			Name:      "show",
			Usage:     "show a stored definition",
			ArgsUsage: "definition_name",
			Action:    show,
			Flags: []cli.Flag{
				cacheDirFlag,
			},
		},
		{
			Name:   "compare",
			Usage:  "compare the definitions, severities and incidents of two database files",
			Action: compare,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "old-file",
					Usage: "old DB file",
					Value: "cache/db/old.db",
				},
				cli.StringFlag{
					Name:  "new-file",
					Usage: "new DB file",
					Value: "cache/db/incident.db",
				},
				cli.BoolFlag{
					Name:  "exit-code",
					Usage: "exit with 1 when the files differ",
				},
			},
		},
	}

	return app
}
