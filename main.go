// cinema-seat-simulator is an interactive terminal seat map for a
// cinema hall. Click a seat to toggle it between free and sold, press
// "r" to reset the hall, and "q" or escape to save and quit. Occupancy
// persists to a JSON snapshot between runs.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/IhorHliba/Cinema-Seat-Simulator/config"
	"github.com/IhorHliba/Cinema-Seat-Simulator/tui"
)

const appName = "cinema-seat-simulator"

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath  string
		rows        int
		cols        int
		dataFile    string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $CINEMA_CONFIG)")
	flagSet.IntVar(&rows, "rows", 0, "number of seat rows (overrides config)")
	flagSet.IntVar(&cols, "cols", 0, "number of seat columns (overrides config)")
	flagSet.StringVar(&dataFile, "data", "", "seat snapshot file (overrides config)")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument: %s", extra[0])
	}

	if showVersion {
		printVersion()
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("rows") {
		cfg.Rows = rows
	}
	if flagSet.Changed("cols") {
		cfg.Cols = cols
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	model, err := tui.New(cfg)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func printVersion() {
	fmt.Printf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	fmt.Println()
}
