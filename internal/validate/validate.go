// Package validate checks the application and module identifiers a
// generation run proposes before anything touches the filesystem.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/exkit/exnew/internal/errors"
)

var (
	appNameRe    = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	moduleNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\.[A-Z][A-Za-z0-9_]*)*$`)
)

// AppName validates an application identifier: a lowercase letter followed
// by lowercase letters, digits and underscores. When the name was derived
// from the target path rather than given explicitly, the error also points
// the operator at the --app override.
func AppName(name string, explicit bool) error {
	if appNameRe.MatchString(name) {
		return nil
	}

	msg := fmt.Sprintf(
		"application name must start with a lowercase letter and contain only lowercase letters, digits and underscores, got: %q",
		name)
	if !explicit {
		msg += " (the application name is inferred from the path; use --app to set it explicitly)"
	}

	return errors.NewValidationError(errors.ErrCodeInvalidAppName, msg)
}

// ModuleName validates a module identifier: dot-separated segments, each
// starting with an uppercase letter.
func ModuleName(name string) error {
	if moduleNameRe.MatchString(name) {
		return nil
	}

	return errors.NewValidationError(errors.ErrCodeInvalidModuleName,
		fmt.Sprintf("module name must be a dot-separated sequence of capitalized segments, like MyApp or Demo.App, got: %q", name))
}

// Registry reports whether a module name is already defined in the global
// namespace the generated code would occupy. It is injected so the check
// can run against different toolchain environments and be stubbed in tests.
type Registry interface {
	Exists(name string) bool
}

// ModuleAvailable checks name against the registry. Callers must validate
// syntax first; an invalid name is never looked up.
func ModuleAvailable(name string, reg Registry) error {
	if reg != nil && reg.Exists(name) {
		return errors.NewValidationError(errors.ErrCodeModuleNameTaken,
			fmt.Sprintf("module name %s is already taken; pick another module name with --module", name))
	}

	return nil
}

// ReservedRegistry is the default Registry. A generator process has no
// live toolchain namespace to query, so it carries the top-level names the
// Elixir standard library and OTP already claim.
type ReservedRegistry struct {
	names map[string]struct{}
}

// NewReservedRegistry builds the default registry of reserved namespaces.
func NewReservedRegistry() *ReservedRegistry {
	reserved := []string{
		"Access", "Agent", "Application", "Atom", "Base", "Bitwise",
		"Code", "Dict", "Enum", "ExUnit", "Exception", "File", "Float",
		"GenEvent", "GenServer", "HashDict", "HashSet", "IO", "Integer",
		"Kernel", "Keyword", "List", "Logger", "Macro", "Map", "MapSet",
		"Mix", "Module", "Node", "OptionParser", "Path", "Port",
		"Process", "Protocol", "Range", "Record", "Regex", "Set",
		"Stream", "String", "StringIO", "Supervisor", "System", "Task",
		"Tuple", "URI", "Version",
	}

	names := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		names[name] = struct{}{}
	}

	return &ReservedRegistry{names: names}
}

// Exists reports whether name is reserved.
func (r *ReservedRegistry) Exists(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Camelize derives the module identifier from an application identifier:
// underscore-separated segments are capitalized and joined, so "my_app"
// becomes "MyApp".
func Camelize(appName string) string {
	caser := cases.Title(language.English)

	parts := strings.Split(appName, "_")
	for i, part := range parts {
		parts[i] = caser.String(part)
	}

	return strings.Join(parts, "")
}
