// Package scaffold materializes new project skeletons: it validates the
// proposed identifiers, resolves the template parameters, renders the
// static template catalog and writes the result to disk.
package scaffold

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/exkit/exnew/internal/errors"
	"github.com/exkit/exnew/internal/logging"
	"github.com/exkit/exnew/internal/validate"
	"github.com/exkit/exnew/internal/version"
)

const (
	// DefaultToolVersion is the toolchain version embedded into the
	// build descriptor when the caller does not inject one.
	DefaultToolVersion = "1.0.5"

	// DefaultDepVersion is the version used in the sample dependency
	// entry of the build descriptor.
	DefaultDepVersion = "0.3.0"
)

// Request captures one generation run as collected from the CLI. AppName
// and ModuleName are optional; empty values are derived during resolution.
// A Request is immutable once built.
type Request struct {
	Path         string
	AppName      string
	ModuleName   string
	Supervised   bool
	LegacyConfig bool
}

// Prompter asks the operator a yes/no question and blocks until answered.
type Prompter interface {
	Confirm(question string) bool
}

// DepsFetcher runs the external dependency fetch step for a generated
// project. Its failure never invalidates the generated project.
type DepsFetcher interface {
	Fetch(ctx context.Context, dir string) error
}

// Options configures a Generator. Zero-value fields fall back to sensible
// defaults; Prompter and Fetcher default to nil, which skips the
// dependency fetch step entirely.
type Options struct {
	Registry    validate.Registry
	Prompter    Prompter
	Fetcher     DepsFetcher
	Logger      logging.Logger
	ToolVersion string
	DepVersion  string
	Output      io.Writer
}

// Generator drives the generation pipeline. All side-effecting
// collaborators are injected so the pipeline stays independently testable.
type Generator struct {
	registry    validate.Registry
	prompter    Prompter
	fetcher     DepsFetcher
	logger      logging.Logger
	toolVersion string
	depVersion  string
	out         io.Writer
}

// NewGenerator creates a generator with the given options.
func NewGenerator(opts Options) *Generator {
	if opts.Registry == nil {
		opts.Registry = validate.NewReservedRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = DefaultToolVersion
	}
	if opts.DepVersion == "" {
		opts.DepVersion = DefaultDepVersion
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Generator{
		registry:    opts.Registry,
		prompter:    opts.Prompter,
		fetcher:     opts.Fetcher,
		logger:      opts.Logger.WithComponent("scaffold"),
		toolVersion: opts.ToolVersion,
		depVersion:  opts.DepVersion,
		out:         opts.Output,
	}
}

// renderedFile is one catalog entry after placeholder substitution.
type renderedFile struct {
	name    string
	relPath string
	content string
}

// Generate runs one generation: validate, resolve, render, write. Any
// validation failure aborts before the filesystem is touched; a write
// failure is fatal but already written files stay on disk.
func (g *Generator) Generate(ctx context.Context, req Request) error {
	params, err := g.resolve(req)
	if err != nil {
		g.logger.Error(ctx, err, "generation aborted", "path", req.Path)
		return err
	}

	g.logger.Debug(ctx, "parameters resolved",
		"app", params.AppName,
		"module", params.ModuleName,
		"entry", SelectEntry(params.Supervised).String(),
		"config", SelectConfig(params.LegacyConfig).String())

	files, err := renderAll(params)
	if err != nil {
		return err
	}

	if err := g.write(ctx, req.Path, files); err != nil {
		g.logger.Error(ctx, err, "generation failed", "path", req.Path)
		return err
	}

	g.logger.Info(ctx, "project generated",
		"path", req.Path, "app", params.AppName, "module", params.ModuleName)
	fmt.Fprintf(g.out, "\nYour project was created successfully.\n")

	g.fetchDeps(ctx, req.Path)

	return nil
}

// resolve validates the request and computes the immutable parameter set.
// Validation order is fixed: app-name syntax, module-name syntax, then
// module-name availability. An invalid name is never looked up.
func (g *Generator) resolve(req Request) (Params, error) {
	appName := req.AppName
	explicit := appName != ""
	if !explicit {
		appName = filepath.Base(filepath.Clean(req.Path))
	}
	if err := validate.AppName(appName, explicit); err != nil {
		return Params{}, err
	}

	moduleName := req.ModuleName
	if moduleName == "" {
		moduleName = validate.Camelize(appName)
	}
	if err := validate.ModuleName(moduleName); err != nil {
		return Params{}, err
	}
	if err := validate.ModuleAvailable(moduleName, g.registry); err != nil {
		return Params{}, err
	}

	shortVersion, err := version.FormatShort(g.toolVersion)
	if err != nil {
		return Params{}, err
	}

	return Params{
		AppName:      appName,
		ModuleName:   moduleName,
		Supervised:   req.Supervised,
		LegacyConfig: req.LegacyConfig,
		ShortVersion: shortVersion,
		DepVersion:   g.depVersion,
	}, nil
}

// renderAll renders every catalog entry for the chosen variants, in write
// order, before anything touches the filesystem.
func renderAll(p Params) ([]renderedFile, error) {
	catalog := Catalog(SelectEntry(p.Supervised), SelectConfig(p.LegacyConfig))

	files := make([]renderedFile, 0, len(catalog))
	for _, d := range catalog {
		relPath, err := RenderPath(d, p)
		if err != nil {
			return nil, errors.NewInternalError("template catalog is inconsistent", err)
		}
		content, err := Render(d, p)
		if err != nil {
			return nil, errors.NewInternalError("template catalog is inconsistent", err)
		}
		files = append(files, renderedFile{name: d.Name, relPath: relPath, content: content})
	}

	return files, nil
}

// projectDirs are the subdirectories every generated project contains,
// including the logs directory which starts out empty.
var projectDirs = []string{"config", "lib", "logs", "test"}

// write creates the target directory tree and writes the rendered files
// in catalog order. Each write is independent; the first failure is fatal
// but there is no rollback of earlier writes.
func (g *Generator) write(ctx context.Context, root string, files []renderedFile) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return errors.NewIOError(errors.ErrCodeDirectoryCreationFailed,
			fmt.Sprintf("failed to create project directory %s", root), err)
	}

	for _, dir := range projectDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return errors.NewIOError(errors.ErrCodeDirectoryCreationFailed,
				fmt.Sprintf("failed to create directory %s", dir), err)
		}
		g.logger.Debug(ctx, "created directory", "dir", dir)
	}

	for _, f := range files {
		path := filepath.Join(root, f.relPath)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return errors.NewIOError(errors.ErrCodeFileWriteFailed,
				fmt.Sprintf("failed to write %s", f.relPath), err)
		}
		g.logger.Debug(ctx, "created file", "path", f.relPath)
		fmt.Fprintf(g.out, "* creating %s\n", f.relPath)
	}

	return nil
}

// fetchDeps asks the operator whether to run the external dependency
// fetch step. Skipped entirely when no prompter or fetcher is wired.
func (g *Generator) fetchDeps(ctx context.Context, dir string) {
	if g.prompter == nil || g.fetcher == nil {
		return
	}
	if !g.prompter.Confirm("Fetch and install dependencies?") {
		return
	}

	if err := g.fetcher.Fetch(ctx, dir); err != nil {
		g.logger.Warn(ctx, err, "dependency fetch failed; the generated project is still valid", "dir", dir)
		fmt.Fprintf(g.out, "Dependency fetch failed: %v\n", err)
	}
}

// StdinPrompter reads the operator's yes/no answer from an input stream.
// An empty answer counts as yes; a read error counts as no.
type StdinPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Prompter.
func (p *StdinPrompter) Confirm(question string) bool {
	fmt.Fprintf(p.Out, "%s [Yn] ", question)

	reader := bufio.NewReader(p.In)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

// ExecFetcher shells out to the mix toolchain to fetch dependencies.
type ExecFetcher struct {
	// Command overrides the toolchain binary; defaults to "mix".
	Command string
}

// Fetch implements DepsFetcher.
func (f *ExecFetcher) Fetch(ctx context.Context, dir string) error {
	command := f.Command
	if command == "" {
		command = "mix"
	}

	cmd := exec.CommandContext(ctx, command, "deps.get")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
