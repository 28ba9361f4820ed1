package gitscribe

// Debug selects which intermediate artifacts are echoed to the log.
// It is passed explicitly to the components that produce them.
type Debug struct {
	Prompts bool // system prompt sent to the backend
	Inputs  bool // user turn (diffstat and diff) sent to the backend
	Outputs bool // raw backend response before rendering
}

// Any reports whether at least one channel is enabled.
func (d Debug) Any() bool {
	return d.Prompts || d.Inputs || d.Outputs
}
