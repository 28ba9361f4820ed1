package workflow

// Phase is a state of the run.
type Phase int

const (
	Pending Phase = iota
	Opened
	Added
	StatusShown
	Committed
	Compared
	Pushed
	Done
	Stopped
	Aborted
)

var phaseNames = [...]string{
	Pending:     "pending",
	Opened:      "opened",
	Added:       "added",
	StatusShown: "status_shown",
	Committed:   "committed",
	Compared:    "compared",
	Pushed:      "pushed",
	Done:        "done",
	Stopped:     "stopped",
	Aborted:     "aborted",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Terminal reports whether the run ends in this phase.
func (p Phase) Terminal() bool {
	return p == Done || p == Stopped || p == Aborted
}

// TerminationReason indicates why the run stopped.
type TerminationReason string

const (
	// TerminationComplete indicates the run reached Done.
	TerminationComplete TerminationReason = "complete"

	// TerminationStopped indicates the user declined a commit or push.
	TerminationStopped TerminationReason = "stopped"

	// TerminationAborted indicates a fatal error.
	TerminationAborted TerminationReason = "aborted"
)

// Result is the outcome of a run.
type Result struct {
	// Trace lists every phase entered, ending with the terminal one.
	Trace []Phase

	Termination TerminationReason

	// Err is set for aborted and stopped runs. It is always a *Error.
	Err error

	// Message is the committed (or, with commits disabled, generated) message.
	Message string
}

// Phase returns the final phase.
func (r Result) Phase() Phase {
	if len(r.Trace) == 0 {
		return Pending
	}
	return r.Trace[len(r.Trace)-1]
}

// ExitCode is 1 for aborted runs and 0 otherwise.
func (r Result) ExitCode() int {
	if r.Termination == TerminationAborted {
		return 1
	}
	return 0
}
