package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/exkit/exnew/internal/scaffold"
	"github.com/exkit/exnew/internal/validate"
)

var newCmd = &cobra.Command{
	Use:     "new PATH",
	Aliases: []string{"n"},
	Short:   "Create a new application skeleton at PATH",
	Long: `Create a new application skeleton at the given path. The application
name defaults to the path basename and must start with a lowercase letter,
followed by lowercase letters, digits and underscores. The module name
defaults to the capitalized application name.

Examples:
  exnew new myapp                       # Plain skeleton in ./myapp
  exnew new myapp --sup                 # Supervised skeleton with an OTP supervision tree
  exnew new . --app demo                # Generate into the current directory as "demo"
  exnew new myapp --module Demo.App     # Override the derived module name
  exnew new myapp --no-exconfig         # Legacy Erlang-term configuration file`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var newFlags = &generateFlags{}

func init() {
	rootCmd.AddCommand(newCmd)
	addGenerateFlags(newCmd.Flags(), newFlags)
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]

	generator := scaffold.NewGenerator(scaffold.Options{
		Registry:    validate.NewReservedRegistry(),
		Prompter:    &scaffold.StdinPrompter{In: os.Stdin, Out: os.Stdout},
		Fetcher:     &scaffold.ExecFetcher{},
		Logger:      newLogger(),
		ToolVersion: newFlags.ElixirVersion,
		DepVersion:  newFlags.DepVersion,
	})

	req := scaffold.Request{
		Path:         path,
		AppName:      newFlags.App,
		ModuleName:   newFlags.Module,
		Supervised:   newFlags.Sup,
		LegacyConfig: newFlags.NoExconfig,
	}

	if err := generator.Generate(cmd.Context(), req); err != nil {
		return err
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. cd " + path)
	fmt.Println("  2. mix test")

	return nil
}
