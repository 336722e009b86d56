package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bsgreeks/greeks-validator/internal/config"
	"github.com/bsgreeks/greeks-validator/internal/errplot"
)

var (
	app     *cli.App
	version string

	greeksConfig config.GreeksConfig
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var err error
	greeksConfig, err = config.LoadConfig()
	if err != nil {
		log.Fatalln("couldn't load config : ", err)
	}

	app = cli.NewApp()
	app.Name = "greeks-plot"
	app.Usage = "draw log-log error plots from validator csv files"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "out, o",
			Value: greeksConfig.Plot.OutputDir,
			Usage: "directory receiving the png files",
		},
		cli.StringSliceFlag{
			Name:  "scenario, s",
			Usage: "scenario as <csv path>=<name>, repeatable; defaults to the configured scenarios",
		},
	}

	app.Action = func(c *cli.Context) error {
		scenarios, err := scenariosFrom(c.StringSlice("scenario"))
		if err != nil {
			return err
		}

		failures := errplot.RunBatch(scenarios, c.String("out"), os.Stdout)
		if failures > 0 {
			log.Printf("%d of %d scenarios failed\n", failures, len(scenarios))
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func scenariosFrom(flags []string) ([]errplot.Scenario, error) {
	if len(flags) == 0 {
		scenarios := make([]errplot.Scenario, 0, len(greeksConfig.Plot.Scenarios))
		for _, sc := range greeksConfig.Plot.Scenarios {
			scenarios = append(scenarios, errplot.Scenario{CSV: sc.CSV, Name: sc.Name})
		}
		return scenarios, nil
	}

	return parseScenarios(flags)
}

func parseScenarios(flags []string) ([]errplot.Scenario, error) {
	scenarios := make([]errplot.Scenario, 0, len(flags))
	for _, flag := range flags {
		csvPath, name, ok := strings.Cut(flag, "=")
		if !ok || csvPath == "" || name == "" {
			return nil, fmt.Errorf("invalid scenario %q, expected <csv path>=<name>", flag)
		}
		scenarios = append(scenarios, errplot.Scenario{CSV: csvPath, Name: name})
	}
	return scenarios, nil
}
