// Package workflow sequences one gitscribe run: check the repository,
// stage, show status, generate and validate a message, commit, and push.
//
// The run is a linear state machine:
//
//	Pending → Opened → Added → StatusShown → Committed → Pushed → Done
//	                                       ↘ Compared  → Done
//
// Any fatal condition moves the run to Aborted. A declined commit or push
// confirmation moves it to Stopped, which is not a failure.
//
// Every collaborator (git, model resolution, generation, secret scanning,
// confirmation and output) is injected so the sequence can be driven by
// fakes in tests.
package workflow
