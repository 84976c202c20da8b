//go:build property

package scaffold

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/exkit/exnew/internal/validate"
)

// TestRenderProperties validates rendering invariants over generated
// parameter sets.
func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	paramsFor := func(appName string, supervised, legacy bool) Params {
		return Params{
			AppName:      appName,
			ModuleName:   validate.Camelize(appName),
			Supervised:   supervised,
			LegacyConfig: legacy,
			ShortVersion: "1.0",
			DepVersion:   "0.3.0",
		}
	}

	// Property: rendering the same descriptor twice is byte-identical
	properties.Property("render is pure", prop.ForAll(
		func(appName string, supervised, legacy bool) bool {
			params := paramsFor(appName, supervised, legacy)
			for _, d := range Catalog(SelectEntry(supervised), SelectConfig(legacy)) {
				first, err1 := Render(d, params)
				second, err2 := Render(d, params)
				if err1 != nil || err2 != nil || first != second {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[a-z][a-z0-9_]*`),
		gen.Bool(),
		gen.Bool(),
	))

	// Property: no rendered file ever leaks an unexpanded placeholder
	properties.Property("no placeholder survives rendering", prop.ForAll(
		func(appName string, supervised, legacy bool) bool {
			params := paramsFor(appName, supervised, legacy)
			for _, d := range Catalog(SelectEntry(supervised), SelectConfig(legacy)) {
				content, err := Render(d, params)
				if err != nil || strings.Contains(content, "{{") {
					return false
				}
				relPath, err := RenderPath(d, params)
				if err != nil || strings.Contains(relPath, "{{") {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[a-z][a-z0-9_]*`),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
