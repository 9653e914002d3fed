package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// RefSource names the resolution rule that produced a ref.
	RefSource string

	// ParserKind selects how the dependency config file is read.
	ParserKind string

	// RunStatus represents the outcome of a setup run.
	RunStatus string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// Resolution sources in priority order.
const (
	EnvSource     RefSource = "env"
	BranchSource  RefSource = "branch"
	ConfigSource  RefSource = "config"
	DefaultSource RefSource = "default"
)

// All config parsers supported.
const (
	YAMLParser ParserKind = "yaml" // default
	LineParser ParserKind = "line"
)

// All run statuses.
const (
	SuccessStatus RunStatus = "success"
	FailedStatus  RunStatus = "failed"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidParserKinds lists all valid config parsers.
var ValidParserKinds = map[ParserKind]struct{}{
	YAMLParser: {},
	LineParser: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
