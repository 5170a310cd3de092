package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_BranchName(t *testing.T) {
	t.Run("Should map tag name to branch name verbatim", func(t *testing.T) {
		tag := Tag{Name: "v1.2.3", SHA: "abc123"}
		assert.Equal(t, "v1.2.3", tag.BranchName())
	})
	t.Run("Should be deterministic for the same input", func(t *testing.T) {
		first := Tag{Name: "release-2.0"}
		second := Tag{Name: "release-2.0", SHA: "different"}
		assert.Equal(t, first.BranchName(), second.BranchName())
	})
}

func TestTag_Semver(t *testing.T) {
	t.Run("Should parse a v-prefixed tag", func(t *testing.T) {
		version, err := Tag{Name: "v2.7.10"}.Semver()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), version.Major())
	})
	t.Run("Should fail for a non-semver tag", func(t *testing.T) {
		_, err := Tag{Name: "nightly"}.Semver()
		assert.Error(t, err)
	})
}

func TestParseRepositoryRef(t *testing.T) {
	t.Run("Should parse an owner/name slug", func(t *testing.T) {
		ref, err := ParseRepositoryRef("rust-lang/rustlings")
		require.NoError(t, err)
		assert.Equal(t, "rust-lang", ref.Owner)
		assert.Equal(t, "rustlings", ref.Name)
		assert.Equal(t, "rust-lang/rustlings", ref.String())
	})
	t.Run("Should reject malformed slugs", func(t *testing.T) {
		for _, slug := range []string{"", "noslash", "a/b/c", "/name", "owner/"} {
			_, err := ParseRepositoryRef(slug)
			require.Error(t, err, "slug %q", slug)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		}
	})
}

func TestSyncReport(t *testing.T) {
	t.Run("Should aggregate outcomes and counts", func(t *testing.T) {
		tags := []Tag{{Name: "v1.0"}, {Name: "v1.1"}, {Name: "v2.0"}}
		report := NewSyncReport("run-1", tags)
		report.AddSkipped(tags[0], "filtered out")
		report.AddFailed(tags[1], errors.New("push rejected"))
		report.AddSynced(tags[2], nil)
		synced, skipped, failed := report.Counts()
		assert.Equal(t, 1, synced)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, 1, failed)
		assert.Equal(t, []string{"v2.0"}, report.SyncedBranches())
	})
	t.Run("Should keep hook failures as detail on a synced outcome", func(t *testing.T) {
		report := NewSyncReport("run-2", nil)
		report.AddSynced(Tag{Name: "v3.0"}, []string{"script 1: exited with error"})
		require.Len(t, report.Outcomes, 1)
		assert.Equal(t, SyncStatusSynced, report.Outcomes[0].Status)
		assert.Len(t, report.Outcomes[0].HookErrors, 1)
	})
	t.Run("Should report no synced branches on an empty run", func(t *testing.T) {
		report := NewSyncReport("run-3", nil)
		assert.Empty(t, report.SyncedBranches())
	})
}

func TestTagNames(t *testing.T) {
	t.Run("Should preserve order", func(t *testing.T) {
		tags := []Tag{{Name: "v2.0"}, {Name: "v1.0"}}
		assert.Equal(t, []string{"v2.0", "v1.0"}, TagNames(tags))
	})
}
