package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func success(name, data string) Success {
	return Success{Locator: "https://x/" + name, Filename: name, Payload: []byte(data), SizeBytes: len(data)}
}

func TestBuildEntries_DistinctNames(t *testing.T) {
	entries := BuildEntries([]Success{success("a.zip", "A"), success("b.zip", "B")}, CollisionOverwrite)

	require.Len(t, entries, 2)
	assert.Equal(t, ArchiveEntry{Name: "a.zip", Data: []byte("A")}, entries[0])
	assert.Equal(t, ArchiveEntry{Name: "b.zip", Data: []byte("B")}, entries[1])
}

func TestBuildEntries_OverwriteKeepsLastPayloadAtFirstPosition(t *testing.T) {
	entries := BuildEntries([]Success{
		success("a.zip", "first"),
		success("b.zip", "B"),
		success("a.zip", "second"),
	}, CollisionOverwrite)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.zip", entries[0].Name)
	assert.Equal(t, []byte("second"), entries[0].Data)
	assert.Equal(t, "b.zip", entries[1].Name)
}

func TestBuildEntries_SuffixRenamesDuplicates(t *testing.T) {
	entries := BuildEntries([]Success{
		success("a.zip", "1"),
		success("a.zip", "2"),
		success("a.zip", "3"),
		success("README", "r1"),
		success("README", "r2"),
	}, CollisionSuffix)

	names := make([]string, len(entries))
	for i := range entries {
		names[i] = entries[i].Name
	}
	assert.Equal(t, []string{"a.zip", "a (2).zip", "a (3).zip", "README", "README (2)"}, names)
	assert.Equal(t, []byte("3"), entries[2].Data)
}

func TestBuildEntries_SuffixSkipsTakenNames(t *testing.T) {
	entries := BuildEntries([]Success{
		success("a (2).zip", "x"),
		success("a.zip", "1"),
		success("a.zip", "2"),
	}, CollisionSuffix)

	require.Len(t, entries, 3)
	assert.Equal(t, "a (3).zip", entries[2].Name)
}

func TestBuildEntries_Empty(t *testing.T) {
	assert.Empty(t, BuildEntries(nil, CollisionOverwrite))
}

func TestCollisionPolicy_IsValid(t *testing.T) {
	for _, p := range AllCollisionPolicies() {
		assert.True(t, p.IsValid(), p.String())
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, CollisionPolicy("rename").IsValid())
	assert.Equal(t, unknownDescription, CollisionPolicy("rename").Description())
}
