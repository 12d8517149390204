package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vecsmith/internal/gen"
	"vecsmith/internal/project"
)

// addGeneratorFlags registers the [generator] overrides. Defaults shown in
// help come from project.Defaults; only flags set explicitly override the
// manifest.
func addGeneratorFlags(flags *pflag.FlagSet) {
	d := project.Defaults().Generator
	flags.Uint64("seed", d.Seed, "seed of the (first) program")
	flags.Int("globals", d.Globals, "global vectors per program")
	flags.Int("locals", d.Locals, "local vectors per program")
	flags.Int("statements", d.Statements, "statements in the generated function")
	flags.Bool("checksum", d.Checksum, "checksum every global lane in main")
	flags.String("prefix", d.Prefix, "identifier prefix")
	flags.Int("defer-init", d.DeferInitPercent, "percent of locals initialised by a later assignment")
}

func addBatchFlags(flags *pflag.FlagSet) {
	d := project.Defaults().Batch
	flags.Int("count", d.Count, "number of programs")
	flags.StringP("out", "o", d.Out, "output directory")
	flags.Int("jobs", d.Jobs, "parallel workers (0 = GOMAXPROCS)")
	flags.Bool("no-cache", !d.Cache, "regenerate programs even when cached")
}

// loadManifest reads vecsmith.toml from the working directory upwards and
// applies explicitly set flags on top.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, _, err := project.Load(wd)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cmd.Flags(), &m.Config); err != nil {
		return nil, err
	}
	if err := m.Config.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func applyOverrides(flags *pflag.FlagSet, cfg *project.Config) error {
	g, b := &cfg.Generator, &cfg.Batch
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Lookup(name) != nil && flags.Changed(name) {
			err = apply()
		}
	}
	set("seed", func() (e error) { g.Seed, e = flags.GetUint64("seed"); return })
	set("globals", func() (e error) { g.Globals, e = flags.GetInt("globals"); return })
	set("locals", func() (e error) { g.Locals, e = flags.GetInt("locals"); return })
	set("statements", func() (e error) { g.Statements, e = flags.GetInt("statements"); return })
	set("checksum", func() (e error) { g.Checksum, e = flags.GetBool("checksum"); return })
	set("prefix", func() (e error) { g.Prefix, e = flags.GetString("prefix"); return })
	set("defer-init", func() (e error) { g.DeferInitPercent, e = flags.GetInt("defer-init"); return })
	set("count", func() (e error) { b.Count, e = flags.GetInt("count"); return })
	set("out", func() (e error) { b.Out, e = flags.GetString("out"); return })
	set("jobs", func() (e error) { b.Jobs, e = flags.GetInt("jobs"); return })
	set("no-cache", func() error {
		noCache, e := flags.GetBool("no-cache")
		b.Cache = !noCache
		return e
	})
	if err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}
	return nil
}

func generatorOptions(cfg project.Config) gen.Options {
	return gen.FromConfig(cfg.Generator)
}
