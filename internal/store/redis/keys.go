package redis

const (
	// PrefixSynced is the key prefix for the synced namespace (configuration,
	// workspace collection, legacy settings, layouts).
	PrefixSynced = "tabgrouper:sync:"
	// PrefixLocal is the key prefix for the local-only namespace (autosave
	// ring, undo snapshot).
	PrefixLocal = "tabgrouper:local:"
)
