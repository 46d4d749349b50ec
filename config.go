package flavors

const defaultRegistryPrefix = "flavors"

// StoreConfig controls how a Store is constructed.
type StoreConfig struct {
	Driver Driver

	// Prefix scopes registry entries on shared backends (e.g. redis keys).
	Prefix string

	// RedisClient is required when DriverRedis is used.
	RedisClient RedisClient
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Prefix == "" {
		c.Prefix = defaultRegistryPrefix
	}
	return c
}
