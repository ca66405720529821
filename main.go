package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/netgrep/netgrep/lib/commands"
	"github.com/netgrep/netgrep/lib/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}
	var showVersion bool

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to optional configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "V", false, "Print version and exit")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Search files for instances of a network or its subnets\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  scan                    Search target files for the given networks ('-' or no files reads stdin)\n")
		fmt.Fprintf(os.Stderr, "  collapse                Print the collapsed canonical form of the given networks\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("netgrep %s\n", version)
		os.Exit(0)
	}

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateScanCommand(),
		commands.CreateCollapseCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
