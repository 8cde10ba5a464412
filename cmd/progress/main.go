// ABOUTME: CLI entrypoint for progress: global flags, command dispatch, and exit codes.
// ABOUTME: Opens the board library lazily so file-only commands never touch the data directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/2389-research/progress/store"
)

var version = "dev"

// config holds the global flags and the selected command.
type config struct {
	dataDir     string
	verbose     bool
	showVersion bool
	command     string
	args        []string
}

// usageError marks a command invoked with the wrong arguments. It exits 2.
type usageError string

func (e usageError) Error() string {
	return string(e)
}

// command is one CLI verb.
type command struct {
	usage string
	run   func(c *cli, args []string) error
}

var commands = map[string]command{
	"new":         {usage: "new [-file PATH] NAME", run: cmdNew},
	"boards":      {usage: "boards", run: cmdBoards},
	"delete":      {usage: "delete ID", run: cmdDelete},
	"search":      {usage: "search QUERY", run: cmdSearch},
	"reindex":     {usage: "reindex", run: cmdReindex},
	"show":        {usage: "show BOARD", run: cmdShow},
	"add-list":    {usage: "add-list [-after LIST | -head] BOARD NAME", run: cmdAddList},
	"add-card":    {usage: "add-card [-after CARD | -head] [-description TEXT] [-labels a,b] BOARD LIST NAME", run: cmdAddCard},
	"move-card":   {usage: "move-card [-after CARD] BOARD CARD LIST", run: cmdMoveCard},
	"remove-card": {usage: "remove-card BOARD CARD", run: cmdRemoveCard},
	"remove-list": {usage: "remove-list BOARD LIST", run: cmdRemoveList},
	"rename":      {usage: "rename [-list LIST | -card CARD] BOARD NAME", run: cmdRename},
	"background":  {usage: "background BOARD colour|file VALUE", run: cmdBackground},
	"edit":        {usage: "edit BOARD", run: cmdEdit},
	"export":      {usage: "export [-format FORMAT] [-o FILE] BOARD", run: cmdExport},
	"convert":     {usage: "convert [-format yaml|json|xml] IN OUT", run: cmdConvert},
}

// cli carries the writers and the lazily opened library for one invocation.
type cli struct {
	cfg    config
	stdout io.Writer
	stderr io.Writer
	mgr    *store.Manager
}

func main() {
	loadDotEnvAuto()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags parses the global flags that precede the command name.
func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("progress", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.dataDir, "data-dir", "", "Board library directory (default: $XDG_DATA_HOME/progress)")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Log library activity to stderr")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		cfg.command = fs.Arg(0)
		cfg.args = fs.Args()[1:]
	}
	return cfg, nil
}

// run parses args, dispatches the command and returns the exit code:
// 0 for success, 1 for failure, 2 for bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if cfg.showVersion {
		fmt.Fprintf(stdout, "progress %s\n", version)
		return 0
	}

	if cfg.verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	switch cfg.command {
	case "":
		printHelp(stderr, version)
		return 0
	case "help":
		printHelp(stdout, version)
		return 0
	}

	cmd, ok := commands[cfg.command]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q (run progress -help)\n", cfg.command)
		return 2
	}

	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}
	defer c.close()

	if err := cmd.run(c, cfg.args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "error: %v\n", ue)
			fmt.Fprintf(stderr, "usage: progress %s\n", cmd.usage)
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// manager opens the board library on first use.
func (c *cli) manager() (*store.Manager, error) {
	if c.mgr != nil {
		return c.mgr, nil
	}
	dir, err := resolveDataDir(c.cfg.dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	mgr, err := store.NewManager(dir)
	if err != nil {
		return nil, err
	}
	c.mgr = mgr
	return mgr, nil
}

func (c *cli) close() {
	if c.mgr != nil {
		if err := c.mgr.Close(); err != nil {
			log.Printf("component=progress.cli action=close_library err=%v", err)
		}
	}
}

// flagSet returns a command FlagSet that reports parse errors on stderr.
func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// parse parses command flags, turning parse failures into usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError(err.Error())
	}
	return nil
}
