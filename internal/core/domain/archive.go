package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// ArchiveEntry is one named payload inside an archive.
type ArchiveEntry struct {
	Name string
	Data []byte

	// Modified is the entry timestamp. Zero lets the writer choose.
	Modified time.Time
}

// CollisionPolicy decides what happens when two payloads resolve to the
// same entry name.
type CollisionPolicy string

// Available collision policies.
const (
	// CollisionOverwrite keeps the later payload under the shared name.
	// The entry stays at the position where the name first appeared.
	CollisionOverwrite CollisionPolicy = "overwrite"

	// CollisionSuffix renames later duplicates to "name (2).ext", "name (3).ext", ...
	CollisionSuffix CollisionPolicy = "suffix"
)

// IsValid returns true if the policy is recognised.
func (c CollisionPolicy) IsValid() bool {
	switch c {
	case CollisionOverwrite, CollisionSuffix:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c CollisionPolicy) String() string {
	return string(c)
}

// Description returns a human-readable description of the policy.
func (c CollisionPolicy) Description() string {
	switch c {
	case CollisionOverwrite:
		return "Overwrite (last file with a given name wins)"
	case CollisionSuffix:
		return "Suffix (rename duplicates to name (2).ext)"
	default:
		return unknownDescription
	}
}

// AllCollisionPolicies returns all available collision policies.
func AllCollisionPolicies() []CollisionPolicy {
	return []CollisionPolicy{CollisionOverwrite, CollisionSuffix}
}

// BuildEntries converts successes into archive entries, one per distinct
// name, applying the collision policy. Input order is preserved.
func BuildEntries(successes []Success, policy CollisionPolicy) []ArchiveEntry {
	entries := make([]ArchiveEntry, 0, len(successes))
	index := make(map[string]int, len(successes))

	for i := range successes {
		name := successes[i].Filename
		pos, taken := index[name]
		if !taken {
			index[name] = len(entries)
			entries = append(entries, ArchiveEntry{Name: name, Data: successes[i].Payload})
			continue
		}

		if policy != CollisionSuffix {
			entries[pos].Data = successes[i].Payload
			continue
		}

		unique := nextFreeName(name, index)
		index[unique] = len(entries)
		entries = append(entries, ArchiveEntry{Name: unique, Data: successes[i].Payload})
	}

	return entries
}

// nextFreeName returns the first "base (n).ext" not already in taken.
func nextFreeName(name string, taken map[string]int) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
