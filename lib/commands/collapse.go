package commands

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/netgrep/netgrep/lib/log"
	"github.com/netgrep/netgrep/lib/netmatch"
)

func CreateCollapseCommand() *CollapseCommand {
	gc := &CollapseCommand{
		fs: flag.NewFlagSet("collapse", flag.ExitOnError),
	}
	gc.fs.Var(&gc.networks, "n", "A network to collapse; may be specified multiple times")
	gc.fs.Var(&gc.networkFiles, "N", "A file with one network per line; may be specified multiple times")
	return gc
}

// CollapseCommand prints the canonical collapsed form of the given
// networks, one CIDR per line, IPv4 first.
type CollapseCommand struct {
	fs           *flag.FlagSet
	networks     stringList
	networkFiles stringList

	v4, v6 netmatch.TargetSet
}

func (g *CollapseCommand) Name() string {
	return g.fs.Name()
}

func (g *CollapseCommand) Init(args []string, ctx *AppContext) error {
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

	return nil
}

func (g *CollapseCommand) Run() error {
	out := bufio.NewWriter(os.Stdout)
	defer func() {
		if err := out.Flush(); err != nil {
			log.Errorf("Failed to flush stdout: %v", err)
		}
	}()

	for _, set := range []netmatch.TargetSet{g.v4, g.v6} {
		for _, prefix := range set {
			if _, err := fmt.Fprintln(out, prefix); err != nil {
				return err
			}
		}
	}

	return nil
}
