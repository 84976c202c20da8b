package cmd

import (
	"github.com/spf13/pflag"

	"github.com/exkit/exnew/internal/scaffold"
)

// generateFlags holds the flag values for the new command.
type generateFlags struct {
	Sup           bool   `flag:"sup" desc:"Generate a supervised application skeleton"`
	App           string `flag:"app" desc:"Application name"`
	Module        string `flag:"module" desc:"Module name"`
	NoExconfig    bool   `flag:"no-exconfig" desc:"Use the legacy configuration format"`
	DepVersion    string `flag:"dep-version" desc:"Sample dependency version"`
	ElixirVersion string `flag:"elixir-version" desc:"Target toolchain version"`
}

// addGenerateFlags registers the generation flags on a flag set.
func addGenerateFlags(flags *pflag.FlagSet, f *generateFlags) {
	flags.BoolVar(&f.Sup, "sup", false, "Generate a supervised application skeleton (OTP supervision tree)")
	flags.StringVar(&f.App, "app", "", "Application name (defaults to the path basename)")
	flags.StringVar(&f.Module, "module", "", "Module name (defaults to the capitalized application name)")
	flags.BoolVar(&f.NoExconfig, "no-exconfig", false, "Generate a legacy Erlang-term config file instead of config.exs")
	flags.StringVar(&f.DepVersion, "dep-version", scaffold.DefaultDepVersion, "Version used in the sample dependency entry of mix.exs")
	flags.StringVar(&f.ElixirVersion, "elixir-version", scaffold.DefaultToolVersion, "Target Elixir toolchain version embedded into mix.exs")
}
