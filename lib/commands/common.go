package commands

import (
	"fmt"
	"strings"

	"github.com/netgrep/netgrep/lib/config"
	"github.com/netgrep/netgrep/lib/log"
	"github.com/netgrep/netgrep/lib/netmatch"
	"github.com/netgrep/netgrep/lib/utils"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
}

// stringList collects the values of a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func loadAndValidateConfig(ctx *AppContext) (*config.Config, error) {
	if ctx.ConfigPath == "" {
		return config.Default(), nil
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err = cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation is failed: %v", err)
	}
	return cfg, nil
}

// collectNetworkSpecs gathers raw network specs in order: config entries
// first, then -N list files, then -n literals. List files hold one spec
// per line; blank lines and '#' comments are skipped here, before the
// builder sees them. Unopenable list files are reported and skipped.
func collectNetworkSpecs(cfg *config.Config, specFiles, literals []string) []string {
	var specs []string

	appendFile := func(path string) {
		lines, err := utils.ReadLines(path)
		if err != nil {
			log.Warnf("Could not open network list '%s', skipping: %v", path, err)
			return
		}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			specs = append(specs, line)
		}
	}

	for _, src := range cfg.Networks {
		switch src.Type() {
		case "spec":
			specs = append(specs, src.Spec)
		case "file":
			appendFile(src.File)
		}
	}
	for _, path := range specFiles {
		appendFile(path)
	}
	specs = append(specs, literals...)

	return specs
}

// buildTargetSets collapses the specs into the canonical per-family sets
// and fails when nothing usable remains.
func buildTargetSets(specs []string) (netmatch.TargetSet, netmatch.TargetSet, error) {
	v4, v6 := netmatch.BuildTargetSets(specs)
	if len(v4) == 0 && len(v6) == 0 {
		return nil, nil, fmt.Errorf("no usable target networks were provided")
	}
	if log.IsVerbose() {
		log.Debugf("IPv4 target networks after collapsing: %v", v4.Strings())
		log.Debugf("IPv6 target networks after collapsing: %v", v6.Strings())
	}
	return v4, v6, nil
}
