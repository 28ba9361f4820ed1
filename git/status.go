package git

import (
	"strings"
)

// ChangeKind classifies one staged path.
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Modified ChangeKind = "modified"
	Renamed  ChangeKind = "renamed"
	Deleted  ChangeKind = "deleted"
)

// Change is a single entry of the staged file list.
type Change struct {
	Kind ChangeKind
	Path string
	From string // previous path, set for renames
}

// parseNameStatus reads the output of "git diff --cached --name-status".
// Copies are reported as additions and type changes as modifications.
func parseNameStatus(out string) []Change {
	var changes []Change
	for line := range strings.SplitSeq(out, "\n") {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		switch fields[0][0] {
		case 'A', 'C':
			changes = append(changes, Change{Kind: Added, Path: fields[len(fields)-1]})
		case 'M', 'T':
			changes = append(changes, Change{Kind: Modified, Path: fields[1]})
		case 'D':
			changes = append(changes, Change{Kind: Deleted, Path: fields[1]})
		case 'R':
			if len(fields) < 3 {
				continue
			}
			changes = append(changes, Change{Kind: Renamed, Path: fields[2], From: fields[1]})
		}
	}
	return changes
}

// Group buckets changes by kind, keeping their order within each kind.
func Group(changes []Change) map[ChangeKind][]Change {
	groups := make(map[ChangeKind][]Change)
	for _, c := range changes {
		groups[c.Kind] = append(groups[c.Kind], c)
	}
	return groups
}
