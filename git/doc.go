// Package git wraps the git command line for the commit workflow: staged
// diff and diffstat, staging, committing and pushing.
//
// Repository discovery uses go-git so that bare repositories and paths
// outside any repository are rejected before a git process is spawned.
// Every other operation shells out through a CommandRunner, which tests
// replace with a scripted fake.
package git
