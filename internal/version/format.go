package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/exkit/exnew/internal/errors"
)

// FormatShort normalizes a full semantic version into the short
// "major.minor" display form embedded into generated files. When the
// version carries prerelease identifiers, only the first one is kept:
// "1.2.3" becomes "1.2" and "1.2.3-rc.1" becomes "1.2-rc".
func FormatShort(raw string) (string, error) {
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return "", errors.NewVersionError(
			fmt.Sprintf("unparseable toolchain version %q", raw), err)
	}

	short := fmt.Sprintf("%d.%d", v.Major(), v.Minor())
	if pre := v.Prerelease(); pre != "" {
		first, _, _ := strings.Cut(pre, ".")
		short += "-" + first
	}

	return short, nil
}
