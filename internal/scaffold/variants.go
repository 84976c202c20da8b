package scaffold

// EntryVariant selects which library entry template a run emits.
type EntryVariant int

const (
	// EntryPlain is a bare module stub.
	EntryPlain EntryVariant = iota
	// EntrySupervised adds an OTP application callback with a
	// supervision tree.
	EntrySupervised
)

// String returns the string representation of the entry variant
func (v EntryVariant) String() string {
	switch v {
	case EntryPlain:
		return "plain"
	case EntrySupervised:
		return "supervised"
	default:
		return "unknown"
	}
}

// ConfigVariant selects which runtime configuration template a run emits.
type ConfigVariant int

const (
	// ConfigStructured is the config.exs configuration script.
	ConfigStructured ConfigVariant = iota
	// ConfigLegacy is the Erlang term format configuration file.
	ConfigLegacy
)

// String returns the string representation of the config variant
func (v ConfigVariant) String() string {
	switch v {
	case ConfigStructured:
		return "structured"
	case ConfigLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// SelectEntry maps the --sup flag to an entry variant.
func SelectEntry(supervised bool) EntryVariant {
	if supervised {
		return EntrySupervised
	}
	return EntryPlain
}

// SelectConfig maps the --no-exconfig flag to a config variant.
func SelectConfig(legacy bool) ConfigVariant {
	if legacy {
		return ConfigLegacy
	}
	return ConfigStructured
}
