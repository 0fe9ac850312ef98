package main

import (
	"context"
	"fmt"
	"os"

	"infinite-experiment/airportd/internal/client"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func main() {
	var (
		configPath string
		serverURL  string
		concurrent int
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Destination: &configPath,
			Usage:       "ini file with a [server] section (base_url, timeout)",
			EnvVars:     []string{"AIRPORTCTL_CONFIG"},
			Aliases:     []string{"c"},
		},
		&cli.StringFlag{
			Name:        "server",
			Destination: &serverURL,
			Usage:       "base URL of the airport service",
			Aliases:     []string{"s"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
		},
	}

	newClient := func(c *cli.Context) (*client.AirportClient, error) {
		settings, err := client.LoadSettings(configPath)
		if err != nil {
			return nil, err
		}
		if c.IsSet("server") {
			settings.BaseURL = serverURL
		}
		if c.IsSet("timeout") {
			settings.Timeout = c.Duration("timeout")
		}
		return client.NewAirportClient(settings.BaseURL, settings.Timeout), nil
	}

	app := &cli.App{
		Name:                 "airportctl",
		Usage:                "query and smoke-test the airport lookup service",
		EnableBashCompletion: true,
		Suggest:              true,
		Flags:                flags,
		Commands: []*cli.Command{
			{
				Name:      "lookup",
				Usage:     "Look up airports by IATA code",
				ArgsUsage: "CODE [CODE...]",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("at least one code is required", 2)
					}

					airportClient, err := newClient(c)
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}

					results := make([]*client.LookupResult, 0, c.NArg())
					for _, code := range c.Args().Slice() {
						res, err := airportClient.Lookup(c.Context, code)
						if err != nil {
							return cli.Exit(err.Error(), 1)
						}
						results = append(results, res)
					}

					client.RenderLookups(os.Stdout, results)
					return nil
				},
			},
			{
				Name:  "smoke",
				Usage: "Run the fixture scenarios against a server loaded with the bundled dataset",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "concurrent",
						Destination: &concurrent,
						Value:       10,
						Usage:       "parallel copies of every scenario code (0 skips the concurrent check)",
					},
				},
				Action: func(c *cli.Context) error {
					airportClient, err := newClient(c)
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}

					results := client.RunSmoke(c.Context, airportClient, client.SmokeScenarios(), concurrent)
					if failures := client.RenderSmoke(os.Stdout, results); failures > 0 {
						return cli.Exit(fmt.Sprintf("%d of %d checks failed", failures, len(results)), 1)
					}

					color.New(color.Faint).Println("All checks passed")
					return nil
				},
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
