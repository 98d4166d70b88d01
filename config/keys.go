package config

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigStoragePrefix    = ConfigPrefix + delimiter + "storage"
	ConfigStorageBackend   = ConfigStoragePrefix + delimiter + "backend"
	ConfigStoragePath      = ConfigStoragePrefix + delimiter + "path"
	ConfigStorageCacheSize = ConfigStoragePrefix + delimiter + "cache_size"

	ConfigLogPrefix      = ConfigPrefix + delimiter + "log"
	ConfigLogLevel       = ConfigLogPrefix + delimiter + "level"
	ConfigLogDevelopment = ConfigLogPrefix + delimiter + "development"
)
