package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/civilpm/planset-review/internal/review"
	"github.com/civilpm/planset-review/internal/serve"
	"github.com/civilpm/planset-review/internal/sessions"
)

func main() {
	app := &cli.App{
		Name:  "plansetreview",
		Usage: "PM review reports for civil-engineering planset PDFs",
		Commands: []*cli.Command{
			{
				Name:      "review",
				Usage:     "Analyze a planset PDF and print the review report",
				ArgsUsage: "<planset.pdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "taxonomy",
						Usage: "yaml file overriding the discipline/keyword tables",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "also save the report and JSON export under this directory",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "path to the review audit database",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the structured JSON export instead of the text report",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: review.Action,
			},
			{
				Name:  "serve",
				Usage: "Serve planset reviews over HTTP (POST /api/review)",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Value: 8080,
						Usage: "port to listen on",
					},
					&cli.StringFlag{
						Name:  "taxonomy",
						Usage: "yaml file overriding the discipline/keyword tables",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "path to the review audit database",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: serve.Action,
			},
			{
				Name:  "sessions",
				Usage: "List recent review invocations from the audit log",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of rows to show",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "path to the review audit database",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: sessions.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
