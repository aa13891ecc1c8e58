package config

// ConfigFileName is the default bridge configuration file.
const ConfigFileName = "irisbridge.yaml"

// ConfigFileNames are all recognized configuration file names, in lookup order.
var ConfigFileNames = []string{"irisbridge.yaml", "irisbridge.yml"}

// Version is reported by the version command.
// Can be set at build time using: -ldflags "-X github.com/funvibe/irisbridge/internal/config.Version=..."
var Version = "0.1.0"

// Value type names, as printed by render
const (
	IntTypeName      = "Int"
	FloatTypeName    = "Float"
	BoolTypeName     = "Bool"
	CharTypeName     = "Char"
	FunctionTypeName = "Function"
	UnitTypeName     = "Unit"
)

// Render fragments
const (
	UnitLiteral     = "()"
	FunctionLiteral = "<fun>"
	UnknownPrefix   = "Unknown type: "
	BoxFailPrefix   = "Don't know how to box type: "
)

// FatalExitCode is the process status used when a value cannot be boxed.
const FatalExitCode = 1

// Null policies
const (
	NullAsUnit = "unit"
	NullReject = "reject"
)

// Unsupported-conversion policies
const (
	UnsupportedExit  = "exit"
	UnsupportedError = "error"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
