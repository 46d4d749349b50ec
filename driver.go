package flavors

import "github.com/goforj/flavors/flavorcore"

// Driver identifies a registry backend.
type Driver = flavorcore.Driver

const (
	DriverNull   = flavorcore.DriverNull
	DriverMemory = flavorcore.DriverMemory
	DriverDynamo = flavorcore.DriverDynamo
	DriverSQL    = flavorcore.DriverSQL
	DriverRedis  = flavorcore.DriverRedis
	DriverNATS   = flavorcore.DriverNATS
)

// Store is the backend contract for the flavor registry.
type Store = flavorcore.Store
