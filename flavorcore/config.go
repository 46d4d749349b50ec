package flavorcore

// BaseConfig contains shared, backend-agnostic driver configuration.
type BaseConfig struct {
	// Prefix scopes registry entries on shared backends (e.g. redis keys).
	Prefix string
}
