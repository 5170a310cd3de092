package cmd

import (
	"github.com/forkops/tagsync/internal/config"
	"github.com/spf13/cobra"
)

// registerConfigFlags exposes the configuration inputs as flags so local
// invocations can override the environment.
func registerConfigFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	f.String("base-repo", cfg.BaseRepository, "Base repository (owner/name) whose tags are synced")
	f.String("head-repo", cfg.HeadRepository, "Head repository (owner/name) receiving the branches")
	f.String("cloned-path", cfg.ClonedPath, "Working copy location, relative to the workspace")
	f.String("filter-tags", cfg.FilterTags, "Regex a tag's full name must match to be eligible")
	f.String("filter-semver", cfg.FilterSemver, "Optional semver constraint applied after the regex filter")
	f.String("apply-patch", cfg.ApplyPatch, "URL of a patch document to apply to each synced branch")
	f.String("patch-message", cfg.PatchMessage, "Commit message for the patch commit")
	f.String("patch-author", cfg.PatchAuthor, "Author name for the patch commit")
	f.String("patch-author-email", cfg.PatchAuthorEmail, "Author email for the patch commit")
	f.String("patch-committer", cfg.PatchCommitter, "Committer name for the patch commit")
	f.String("patch-committer-email", cfg.PatchCommitterEmail, "Committer email for the patch commit")
	f.String("scripts-after-sync", cfg.ScriptsAfterSync, "Newline-delimited scripts run after each pushed branch")
	f.String("discovered-tags-file", cfg.DiscoveredTagsFile, "Output path for the discovered-tags list")
	f.String("synced-branches-file", cfg.SyncedBranchesFile, "Output path for the synced-branches list")
}

// applyFlagOverrides copies explicitly set flags over the loaded
// configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			value, err := cmd.Flags().GetString(name)
			if err == nil {
				*dst = value
			}
		}
	}
	set("base-repo", &cfg.BaseRepository)
	set("head-repo", &cfg.HeadRepository)
	set("cloned-path", &cfg.ClonedPath)
	set("filter-tags", &cfg.FilterTags)
	set("filter-semver", &cfg.FilterSemver)
	set("apply-patch", &cfg.ApplyPatch)
	set("patch-message", &cfg.PatchMessage)
	set("patch-author", &cfg.PatchAuthor)
	set("patch-author-email", &cfg.PatchAuthorEmail)
	set("patch-committer", &cfg.PatchCommitter)
	set("patch-committer-email", &cfg.PatchCommitterEmail)
	set("scripts-after-sync", &cfg.ScriptsAfterSync)
	set("discovered-tags-file", &cfg.DiscoveredTagsFile)
	set("synced-branches-file", &cfg.SyncedBranchesFile)
}
