package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exkit/exnew/internal/errors"
)

type fakeRegistry struct {
	taken map[string]bool
}

func (f *fakeRegistry) Exists(name string) bool {
	return f.taken[name]
}

type fakePrompter struct {
	answer bool
	asked  []string
}

func (f *fakePrompter) Confirm(question string) bool {
	f.asked = append(f.asked, question)
	return f.answer
}

type fakeFetcher struct {
	dirs []string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, dir string) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

func newTestGenerator(opts Options) *Generator {
	if opts.Registry == nil {
		opts.Registry = &fakeRegistry{}
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = "1.0.5"
	}
	if opts.Output == nil {
		opts.Output = &bytes.Buffer{}
	}
	return NewGenerator(opts)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateDefaultProject(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")

	generator := newTestGenerator(Options{})
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root}))

	for _, relPath := range []string{
		"README.md",
		".gitignore",
		"mix.exs",
		"config/config.exs",
		"lib/myapp.ex",
		"test/test_helper.exs",
		"test/myapp_test.exs",
	} {
		assert.FileExists(t, filepath.Join(root, relPath))
	}

	info, err := os.Stat(filepath.Join(root, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// plain entry variant with the derived module name
	entry := readFile(t, filepath.Join(root, "lib/myapp.ex"))
	assert.Contains(t, entry, "defmodule Myapp do")
	assert.NotContains(t, entry, "use Application")

	mixfile := readFile(t, filepath.Join(root, "mix.exs"))
	assert.Contains(t, mixfile, "app: :myapp")
	assert.Contains(t, mixfile, `elixir: "~> 1.0"`)
	assert.Contains(t, mixfile, "[applications: [:logger]]")

	// structured config variant, not the legacy one
	assert.NoFileExists(t, filepath.Join(root, "config/myapp.config"))
}

func TestGenerateSupervisedProject(t *testing.T) {
	root := filepath.Join(t.TempDir(), "target")

	generator := newTestGenerator(Options{})
	req := Request{
		Path:       root,
		AppName:    "demo",
		ModuleName: "Demo.App",
		Supervised: true,
	}
	require.NoError(t, generator.Generate(context.Background(), req))

	entry := readFile(t, filepath.Join(root, "lib/demo.ex"))
	assert.Contains(t, entry, "defmodule Demo.App do")
	assert.Contains(t, entry, "use Application")

	mixfile := readFile(t, filepath.Join(root, "mix.exs"))
	assert.Contains(t, mixfile, "mod: {Demo.App, []}")

	testCase := readFile(t, filepath.Join(root, "test/demo_test.exs"))
	assert.Contains(t, testCase, "defmodule Demo.AppTest do")
}

func TestGenerateLegacyConfigProject(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")

	generator := newTestGenerator(Options{})
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root, LegacyConfig: true}))

	assert.FileExists(t, filepath.Join(root, "config/myapp.config"))
	assert.NoFileExists(t, filepath.Join(root, "config/config.exs"))

	legacy := readFile(t, filepath.Join(root, "config/myapp.config"))
	assert.Contains(t, legacy, "{myapp, []}")
}

func TestGenerateEmbedsShortToolVersion(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")

	generator := newTestGenerator(Options{ToolVersion: "1.2.3-rc.1"})
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root}))

	mixfile := readFile(t, filepath.Join(root, "mix.exs"))
	assert.Contains(t, mixfile, `elixir: "~> 1.2-rc"`)
}

func TestGenerateValidationFailuresTouchNothing(t *testing.T) {
	tests := []struct {
		name         string
		req          func(root string) Request
		registry     *fakeRegistry
		expectedCode string
	}{
		{
			name:         "invalid derived app name",
			req:          func(root string) Request { return Request{Path: root + "/My-App"} },
			expectedCode: errors.ErrCodeInvalidAppName,
		},
		{
			name:         "invalid explicit app name",
			req:          func(root string) Request { return Request{Path: root + "/myapp", AppName: "My-App"} },
			expectedCode: errors.ErrCodeInvalidAppName,
		},
		{
			name:         "invalid module name",
			req:          func(root string) Request { return Request{Path: root + "/myapp", ModuleName: "bad.name"} },
			expectedCode: errors.ErrCodeInvalidModuleName,
		},
		{
			name:         "module name taken",
			req:          func(root string) Request { return Request{Path: root + "/myapp"} },
			registry:     &fakeRegistry{taken: map[string]bool{"Myapp": true}},
			expectedCode: errors.ErrCodeModuleNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			registry := tt.registry
			if registry == nil {
				registry = &fakeRegistry{}
			}
			generator := newTestGenerator(Options{Registry: registry})

			req := tt.req(tmp)
			err := generator.Generate(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, errors.ErrorCode(err))

			// no directory or file may exist under the target path
			_, statErr := os.Stat(req.Path)
			assert.True(t, os.IsNotExist(statErr), "target path must not be created on validation failure")
		})
	}
}

func TestGenerateInvalidNamesNeverReachRegistry(t *testing.T) {
	registry := &fakeRegistry{taken: map[string]bool{}}
	lookups := 0
	generator := newTestGenerator(Options{Registry: registryFunc(func(name string) bool {
		lookups++
		return registry.Exists(name)
	})})

	err := generator.Generate(context.Background(), Request{
		Path:       filepath.Join(t.TempDir(), "myapp"),
		ModuleName: "not_valid",
	})
	require.Error(t, err)
	assert.Zero(t, lookups, "an invalid module name must never be looked up")
}

type registryFunc func(name string) bool

func (f registryFunc) Exists(name string) bool { return f(name) }

func TestGenerateUnparseableToolVersion(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")

	generator := newTestGenerator(Options{ToolVersion: "not-a-version"})
	err := generator.Generate(context.Background(), Request{Path: root})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnparseableVersion, errors.ErrorCode(err))

	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateTargetIsAFile(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "myapp")
	require.NoError(t, os.WriteFile(target, []byte("in the way"), 0644))

	generator := newTestGenerator(Options{})
	err := generator.Generate(context.Background(), Request{Path: target})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDirectoryCreationFailed, errors.ErrorCode(err))
}

func TestGenerateRunsFetchStepOnConfirmation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")
	prompter := &fakePrompter{answer: true}
	fetcher := &fakeFetcher{}

	generator := newTestGenerator(Options{Prompter: prompter, Fetcher: fetcher})
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root}))

	require.Len(t, prompter.asked, 1)
	assert.Equal(t, []string{root}, fetcher.dirs)
}

func TestGenerateSkipsFetchStepOnDecline(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")
	prompter := &fakePrompter{answer: false}
	fetcher := &fakeFetcher{}

	generator := newTestGenerator(Options{Prompter: prompter, Fetcher: fetcher})
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root}))

	assert.Empty(t, fetcher.dirs)
}

func TestGenerateFetchFailureDoesNotInvalidateProject(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")
	prompter := &fakePrompter{answer: true}
	fetcher := &fakeFetcher{err: fmt.Errorf("network unreachable")}

	generator := newTestGenerator(Options{Prompter: prompter, Fetcher: fetcher})

	// the run still succeeds and the project stays on disk
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root}))
	assert.FileExists(t, filepath.Join(root, "mix.exs"))
}

func TestGenerateProgressOutput(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myapp")
	var out bytes.Buffer

	generator := newTestGenerator(Options{Output: &out})
	require.NoError(t, generator.Generate(context.Background(), Request{Path: root}))

	assert.Contains(t, out.String(), "* creating README.md")
	assert.Contains(t, out.String(), "* creating lib/myapp.ex")
	assert.Contains(t, out.String(), "Your project was created successfully.")
}

func TestStdinPrompter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "empty answer is yes", input: "\n", expected: true},
		{name: "y", input: "y\n", expected: true},
		{name: "yes with spaces", input: "  yes  \n", expected: true},
		{name: "uppercase Y", input: "Y\n", expected: true},
		{name: "n", input: "n\n", expected: false},
		{name: "anything else", input: "maybe\n", expected: false},
		{name: "eof counts as no", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			prompter := &StdinPrompter{In: bytes.NewBufferString(tt.input), Out: &out}

			assert.Equal(t, tt.expected, prompter.Confirm("Fetch and install dependencies?"))
			assert.Contains(t, out.String(), "Fetch and install dependencies? [Yn]")
		})
	}
}
