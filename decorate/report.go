package decorate

// Status is the outcome of one configuration section in a pass.
type Status string

const (
	// StatusConfigured means an activation unit was created and configured.
	StatusConfigured Status = "configured"
	// StatusFailed means instantiation or Configure failed; the failure
	// was contained and the pass continued.
	StatusFailed Status = "failed"
	// StatusSkippedUnknown means the section had no type key or a type
	// unknown to the registry.
	StatusSkippedUnknown Status = "skipped_unknown_type"
	// StatusShadowed means an earlier source already resolved this
	// section name; first-seen-wins.
	StatusShadowed Status = "shadowed"
)

// Result records the outcome of one section.
type Result struct {
	Section string
	Source  string // "main" or "embedded"
	Type    string
	Status  Status
	Err     error // set only for StatusFailed
}

// Report is the inspectable outcome of one decoration pass. Partial failure
// is a value here, not an error: the contract is best-effort activation of
// all resolvable sections.
type Report struct {
	PassID  string
	Results []Result
	// Aborted is set when enumerating a source's sections failed at the
	// storage layer; the pass stopped there. Results before the abort
	// remain valid.
	Aborted error
}

// Count returns the number of results with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the results of sections whose activation failed.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			failed = append(failed, result)
		}
	}
	return failed
}

// Section returns the result for a named section and whether it was seen.
func (r *Report) Section(name string) (Result, bool) {
	for _, result := range r.Results {
		if result.Section == name {
			return result, true
		}
	}
	return Result{}, false
}
