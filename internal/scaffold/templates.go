package scaffold

import (
	"bytes"
	"fmt"
	"text/template"
)

// Descriptor names one generated file: where it lands relative to the
// project root and the template its content comes from. Both OutPath and
// Body are text/template strings over Params. The catalog is static data
// fully controlled by the generator; an unrecognized placeholder is a
// programmer error caught by the catalog tests, never a runtime condition.
type Descriptor struct {
	Name    string
	OutPath string
	Body    string
}

// Params is the fully resolved, immutable parameter set consumed by
// rendering. It only exists after validation has succeeded.
type Params struct {
	AppName      string
	ModuleName   string
	Supervised   bool
	LegacyConfig bool
	ShortVersion string
	DepVersion   string
}

// AppDeclaration returns the OTP application fragment for the build
// descriptor. The supervised skeleton additionally registers the module
// as the runtime entry callback.
func (p Params) AppDeclaration() string {
	if p.Supervised {
		return fmt.Sprintf("[applications: [:logger],\n     mod: {%s, []}]", p.ModuleName)
	}
	return "[applications: [:logger]]"
}

// Catalog returns the descriptors for one generation run, in write order.
// Exactly one of the two entry templates and exactly one of the two config
// templates is included; all other templates are unconditional.
func Catalog(entry EntryVariant, config ConfigVariant) []Descriptor {
	descriptors := []Descriptor{
		readmeTemplate(),
		gitignoreTemplate(),
		mixfileTemplate(),
	}

	if config == ConfigLegacy {
		descriptors = append(descriptors, legacyConfigTemplate())
	} else {
		descriptors = append(descriptors, configTemplate())
	}

	if entry == EntrySupervised {
		descriptors = append(descriptors, supervisedEntryTemplate())
	} else {
		descriptors = append(descriptors, plainEntryTemplate())
	}

	return append(descriptors, testHelperTemplate(), testCaseTemplate())
}

// Render fills a descriptor's body with the resolved parameters. It is a
// pure string transformation: the same inputs always produce the same
// output.
func Render(d Descriptor, p Params) (string, error) {
	return execute(d.Name, d.Body, p)
}

// RenderPath fills the descriptor's output path, which may embed the
// application name.
func RenderPath(d Descriptor, p Params) (string, error) {
	return execute(d.Name+" path", d.OutPath, p)
}

func execute(name, text string, p Params) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

func readmeTemplate() Descriptor {
	return Descriptor{
		Name:    "readme",
		OutPath: "README.md",
		Body: `# {{.ModuleName}}

**TODO: Add description**
`,
	}
}

func gitignoreTemplate() Descriptor {
	return Descriptor{
		Name:    "gitignore",
		OutPath: ".gitignore",
		Body: `/_build
/deps
/logs/*.log
erl_crash.dump
*.ez
`,
	}
}

func mixfileTemplate() Descriptor {
	return Descriptor{
		Name:    "mixfile",
		OutPath: "mix.exs",
		Body: `defmodule {{.ModuleName}}.Mixfile do
  use Mix.Project

  def project do
    [app: :{{.AppName}},
     version: "0.0.1",
     elixir: "~> {{.ShortVersion}}",
     deps: deps]
  end

  # Configuration for the OTP application
  #
  # Type ` + "`mix help compile.app`" + ` for more information
  def application do
    {{.AppDeclaration}}
  end

  # Dependencies can be Hex packages:
  #
  #   {:mydep, "~> {{.DepVersion}}"}
  #
  # Or git/path repositories:
  #
  #   {:mydep, git: "https://github.com/elixir-lang/mydep.git", tag: "0.1.0"}
  #
  # Type ` + "`mix help deps`" + ` for more examples and options
  defp deps do
    []
  end
end
`,
	}
}

func configTemplate() Descriptor {
	return Descriptor{
		Name:    "config",
		OutPath: "config/config.exs",
		Body: `# This file is responsible for configuring your application and its
# dependencies. The Mix.Config module provides functions to aid in
# doing so.
use Mix.Config

# Note this file is loaded before any dependency and is restricted to
# this project. If another project depends on this project, this file
# won't be loaded nor affect the parent project.

# Sample configuration:
#
#     config :{{.AppName}}, key: :value
#
# It is also possible to import configuration files, relative to this
# directory. Configuration from the imported file will override the
# ones defined here, which is why it is important to import them last.
#
#     import_config "#{Mix.env}.exs"
`,
	}
}

func legacyConfigTemplate() Descriptor {
	return Descriptor{
		Name:    "legacy config",
		OutPath: "config/{{.AppName}}.config",
		Body: `%% Runtime configuration for the {{.AppName}} application, given in
%% Erlang term format. Each entry pairs an application name with its
%% environment.
[
 {{printf "{%s, []}" .AppName}}
].
`,
	}
}

func plainEntryTemplate() Descriptor {
	return Descriptor{
		Name:    "entry",
		OutPath: "lib/{{.AppName}}.ex",
		Body: `defmodule {{.ModuleName}} do
end
`,
	}
}

func supervisedEntryTemplate() Descriptor {
	return Descriptor{
		Name:    "supervised entry",
		OutPath: "lib/{{.AppName}}.ex",
		Body: `defmodule {{.ModuleName}} do
  use Application

  # See http://elixir-lang.org/docs/stable/elixir/Application.html
  # for more information on OTP Applications
  def start(_type, _args) do
    import Supervisor.Spec, warn: false

    children = [
      # Define workers and child supervisors to be supervised
      # worker({{.ModuleName}}.Worker, [arg1, arg2, arg3])
    ]

    # See http://elixir-lang.org/docs/stable/elixir/Supervisor.html
    # for other strategies and supported options
    opts = [strategy: :one_for_one, name: {{.ModuleName}}.Supervisor]
    Supervisor.start_link(children, opts)
  end
end
`,
	}
}

func testHelperTemplate() Descriptor {
	return Descriptor{
		Name:    "test helper",
		OutPath: "test/test_helper.exs",
		Body: `ExUnit.start()
`,
	}
}

func testCaseTemplate() Descriptor {
	return Descriptor{
		Name:    "test case",
		OutPath: "test/{{.AppName}}_test.exs",
		Body: `defmodule {{.ModuleName}}Test do
  use ExUnit.Case

  test "the truth" do
    assert 1 + 1 == 2
  end
end
`,
	}
}
