package commands

import (
	"flag"
	"os"

	"github.com/netgrep/netgrep/lib/format"
	"github.com/netgrep/netgrep/lib/netmatch"
	"github.com/netgrep/netgrep/lib/scan"
)

func CreateScanCommand() *ScanCommand {
	gc := &ScanCommand{
		fs: flag.NewFlagSet("scan", flag.ExitOnError),
	}
	gc.fs.Var(&gc.networks, "n", "A network to find; may be specified multiple times")
	gc.fs.Var(&gc.networkFiles, "N", "A file with one network per line; may be specified multiple times")
	gc.fs.BoolVar(&gc.colorize, "c", false, "Colorize the output")
	return gc
}

type ScanCommand struct {
	fs           *flag.FlagSet
	networks     stringList
	networkFiles stringList
	colorize     bool

	v4, v6  netmatch.TargetSet
	printer *format.Printer
	targets []string
}

func (g *ScanCommand) Name() string {
	return g.fs.Name()
}

func (g *ScanCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}

	specs := collectNetworkSpecs(cfg, g.networkFiles, g.networks)
	if g.v4, g.v6, err = buildTargetSets(specs); err != nil {
		return err
	}

	mode := cfg.ColorMode()
	if g.colorize {
		mode = format.ModeAlways
	}
	if g.printer, err = format.NewPrinter(os.Stdout, cfg.OutputFormat(), mode.Enabled(os.Stdout)); err != nil {
		return err
	}

	g.targets = g.fs.Args()
	return nil
}

func (g *ScanCommand) Run() error {
	return scan.NewScanner(g.v4, g.v6, g.printer).ScanFiles(g.targets)
}
