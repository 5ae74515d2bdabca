package store

var client Factory

// Factory is the persistent store (C4). It owns users, roles,
// integrations, keys, configs, IP assignments and traffic counters.
// None of its methods leak the storage dialect: every multi-row write
// named in the component design is a single transaction here, not
// composed by callers.
type Factory interface {
	Users() UserStore
	Roles() RoleStore
	Integrations() IntegrationStore
	Keys() KeyStore
	Configs() ConfigStore
	Stats() StatStore
	Requests() RequestStore
	PeerSettings() PeerSettingStore
	Close() error
}

// Client returns the current store client instance.
func Client() Factory {
	return client
}

// SetClient sets the store client instance.
func SetClient(factory Factory) {
	client = factory
}
