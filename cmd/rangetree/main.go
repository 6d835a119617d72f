package main

import (
	goflag "flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/henderiw/rangetree/pkg/inventory"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const (
	cfgFile    = "file"
	cfgDataDir = "data-dir"
	cfgDay     = "day"
	cfgTest    = "test"
	cfgSecond  = "second"
	cfgPrint   = "print"
	cfgConfig  = "config"

	envPrefix = "RANGETREE"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("rangetree", flag.ContinueOnError)
	fs.StringP(cfgFile, "f", "", "input file, overrides the data dir lookup")
	fs.StringP(cfgDataDir, "d", "data", "directory holding one sub directory per day")
	fs.String(cfgDay, "day_05", "puzzle day to solve")
	fs.BoolP(cfgTest, "t", false, "use test.txt instead of input.txt")
	fs.BoolP(cfgSecond, "s", false, "solve the second task")
	fs.BoolP(cfgPrint, "p", false, "print the range tree")
	fs.StringP(cfgConfig, "c", "", "optional config file")
	return fs
}

func newConfig(fs *flag.FlagSet) (*viper.Viper, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	if err := cfg.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if path := cfg.GetString(cfgConfig); path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return cfg, nil
}

// dataPath returns the explicit input file or <data-dir>/<day>/<test|input>.txt.
func dataPath(cfg *viper.Viper) string {
	if f := cfg.GetString(cfgFile); f != "" {
		return f
	}
	name := "input.txt"
	if cfg.GetBool(cfgTest) {
		name = "test.txt"
	}
	return filepath.Join(cfg.GetString(cfgDataDir), cfg.GetString(cfgDay), name)
}

func run(cfg *viper.Viper, out io.Writer, log logr.Logger) error {
	day := cfg.GetString(cfgDay)
	if day != "day_05" {
		return errors.Newf("day %q is not supported", day)
	}

	path := dataPath(cfg)
	log.V(1).Info("loading inventory", "path", path)
	inv, err := inventory.LoadFile(path)
	if err != nil {
		return err
	}
	log.V(1).Info("loaded inventory", "ranges", len(inv.Ranges), "ids", len(inv.IDs))

	if cfg.GetBool(cfgPrint) {
		t, err := inv.Tree()
		if err != nil {
			return err
		}
		fmt.Fprint(out, t.String())
	}

	var res string
	if cfg.GetBool(cfgSecond) {
		total, err := inv.TotalFresh()
		if err != nil {
			return err
		}
		if linear := inv.TotalFreshLinear(); linear != total {
			return errors.AssertionFailedf("tree total %d differs from linear total %d", total, linear)
		}
		res = fmt.Sprintf("Total numbers in ranges: %d", total)
	} else {
		fresh, err := inv.Fresh()
		if err != nil {
			return err
		}
		res = fmt.Sprintf("Total available numbers: %d", fresh)
	}
	fmt.Fprintf(out, "%s: %s\n", day, res)
	return nil
}

func main() {
	fs := newFlagSet()
	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := newConfig(fs)
	if err != nil {
		klog.ErrorS(err, "cannot load config")
		klog.FlushAndExit(klog.ExitFlushTimeout, 1)
	}
	if err := run(cfg, os.Stdout, klog.Background()); err != nil {
		klog.ErrorS(err, "run failed")
		klog.FlushAndExit(klog.ExitFlushTimeout, 1)
	}
	klog.Flush()
}
