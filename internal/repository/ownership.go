package repository

// IsOwner reports whether requester is entitled to mutate a resource whose
// recorded creator is owner. The comparison is the entire policy: there are
// no roles or delegation, a resource may be destroyed only by the identity
// that created it.
func IsOwner(owner, requester uint64) bool {
	return owner == requester
}
