package prefs

// Source is an opaque, read-only, hierarchical key-value configuration tree.
//
// ChildNames is the only operation that can fail: it touches the backing
// store, and a storage-level failure there aborts the whole decoration pass.
// Section and Get never fail; a missing section yields an empty Source and a
// missing key yields the caller's default.
type Source interface {
	// ChildNames returns the names of the direct sub-sections.
	// The order is not part of the contract.
	ChildNames() ([]string, error)

	// Section returns the named sub-section, or an empty Source if absent.
	Section(name string) Source

	// Get returns the string value for key, or def if the key is absent.
	Get(key, def string) string
}

// Empty returns a Source with no sections and no values.
func Empty() Source {
	return NewMapSource(nil)
}
