package usecase

// ConfigFile mirrors the on-disk TOML configuration.
type ConfigFile struct {
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

// OutputConfig customizes the decorative parts of the summary line.
type OutputConfig struct {
	AheadSymbol  string `toml:"ahead_symbol"`
	BehindSymbol string `toml:"behind_symbol"`
	OpenBracket  string `toml:"open_bracket"`
	CloseBracket string `toml:"close_bracket"`
}

// LoggingConfig controls the optional debug log file. The tool prints
// nothing on failure, so a log file is the only way to diagnose it when
// embedded in a prompt.
type LoggingConfig struct {
	Dir   string `toml:"dir"`
	Level string `toml:"level"`
}

// DefaultConfigFile returns the configuration used when no file exists.
func DefaultConfigFile() ConfigFile {
	sym := DefaultSymbols()
	return ConfigFile{
		Output: OutputConfig{
			AheadSymbol:  sym.Ahead,
			BehindSymbol: sym.Behind,
			OpenBracket:  sym.OpenBracket,
			CloseBracket: sym.CloseBracket,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SymbolsFromConfig converts the output section into Symbols, falling back
// to defaults for any empty field.
func SymbolsFromConfig(out OutputConfig) Symbols {
	sym := DefaultSymbols()
	if out.AheadSymbol != "" {
		sym.Ahead = out.AheadSymbol
	}
	if out.BehindSymbol != "" {
		sym.Behind = out.BehindSymbol
	}
	if out.OpenBracket != "" {
		sym.OpenBracket = out.OpenBracket
	}
	if out.CloseBracket != "" {
		sym.CloseBracket = out.CloseBracket
	}
	return sym
}
