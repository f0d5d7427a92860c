package platform

// PermissionOracle decides whether the transfer gate may proceed with a
// remote delivery. It models the controller-permission check an APU core
// performs before authorizing a query-driven transfer.
type PermissionOracle interface {
	// Allow reports whether a transfer request may proceed. isLocal
	// distinguishes a request originating in-process from a remote one.
	Allow(isLocal bool) bool
}

// LocalFirstOracle grants local requests unconditionally and remote
// requests only when explicitly configured to allow them.
type LocalFirstOracle struct {
	// AllowRemoteConfig gates non-local requests. Defaults to false: remote
	// configuration is denied unless explicitly enabled.
	AllowRemoteConfig bool
}

// Allow implements PermissionOracle.
func (o *LocalFirstOracle) Allow(isLocal bool) bool {
	if isLocal {
		return true
	}
	return o.AllowRemoteConfig
}
