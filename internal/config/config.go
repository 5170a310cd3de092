package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/forkops/tagsync/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	BaseRepository      string `mapstructure:"base_repository"`
	HeadRepository      string `mapstructure:"head_repository"`
	Workspace           string `mapstructure:"workspace"`
	ClonedPath          string `mapstructure:"cloned_path"`
	FilterTags          string `mapstructure:"filter_tags"`
	FilterSemver        string `mapstructure:"filter_semver"`
	ApplyPatch          string `mapstructure:"apply_patch"`
	PatchMessage        string `mapstructure:"patch_message"`
	PatchAuthor         string `mapstructure:"patch_author"`
	PatchAuthorEmail    string `mapstructure:"patch_author_email"`
	PatchCommitter      string `mapstructure:"patch_committer"`
	PatchCommitterEmail string `mapstructure:"patch_committer_email"`
	ScriptsAfterSync    string `mapstructure:"scripts_after_sync"`
	GithubToken         string `mapstructure:"github_token"`
	DiscoveredTagsFile  string `mapstructure:"discovered_tags_file"`
	SyncedBranchesFile  string `mapstructure:"synced_branches_file"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Workspace:          ".",
		ClonedPath:         "head-repo",
		FilterTags:         ".*",
		PatchAuthor:        "tagsync[bot]",
		PatchAuthorEmail:   "tagsync[bot]@users.noreply.github.com",
		DiscoveredTagsFile: "new_tags.txt",
		SyncedBranchesFile: "synced_branches.txt",
	}
}

// Validate validates the format of every configured value. Any error here
// is fatal and is reported before tag processing starts; an invalid filter
// pattern is never treated as match-all.
func (c *Config) Validate() error {
	if c.BaseRepository != "" {
		if _, err := domain.ParseRepositoryRef(c.BaseRepository); err != nil {
			return err
		}
	}
	if c.HeadRepository != "" {
		if _, err := domain.ParseRepositoryRef(c.HeadRepository); err != nil {
			return err
		}
	}
	if _, err := c.FilterRegexp(); err != nil {
		return err
	}
	if _, err := c.SemverConstraint(); err != nil {
		return err
	}
	if c.ApplyPatch != "" {
		u, err := url.Parse(c.ApplyPatch)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return domain.NewConfigError("apply_patch", "must be an http(s) URL: "+c.ApplyPatch)
		}
	}
	if c.ClonedPath == "" {
		return domain.NewConfigError("cloned_path", "cannot be empty")
	}
	if strings.Contains(c.ClonedPath, "..") {
		return domain.NewConfigError("cloned_path", "contains invalid path traversal")
	}
	return nil
}

// ValidateForSync validates that everything an actual sync run requires is
// present, on top of Validate.
func (c *Config) ValidateForSync() error {
	if c.BaseRepository == "" {
		return domain.NewConfigError("base_repository", "cannot be empty")
	}
	if c.HeadRepository == "" {
		return domain.NewConfigError("head_repository", "cannot be resolved; set HEAD_REPOSITORY or GITHUB_REPOSITORY")
	}
	if c.GithubToken == "" {
		return domain.NewConfigError("github_token", "required to authenticate fetch and push")
	}
	return c.Validate()
}

// BaseRef returns the parsed base repository reference.
func (c *Config) BaseRef() (domain.RepositoryRef, error) {
	return domain.ParseRepositoryRef(c.BaseRepository)
}

// HeadRef returns the parsed head repository reference.
func (c *Config) HeadRef() (domain.RepositoryRef, error) {
	return domain.ParseRepositoryRef(c.HeadRepository)
}

// FilterRegexp compiles the tag filter anchored as a whole-string match.
// A tag is retained only when its full name matches; a substring match
// does not count.
func (c *Config) FilterRegexp() (*regexp.Regexp, error) {
	pattern := c.FilterTags
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, domain.NewConfigError("filter_tags", err.Error())
	}
	return re, nil
}

// SemverConstraint parses the optional semver constraint filter. It
// returns nil when no constraint is configured.
func (c *Config) SemverConstraint() (*semver.Constraints, error) {
	if c.FilterSemver == "" {
		return nil, nil
	}
	constraint, err := semver.NewConstraint(c.FilterSemver)
	if err != nil {
		return nil, domain.NewConfigError("filter_semver", err.Error())
	}
	return constraint, nil
}

// Scripts parses the newline-delimited post-sync scripts into an ordered
// list. Parsing happens at configuration load, not at invocation time.
func (c *Config) Scripts() []string {
	var scripts []string
	for _, line := range strings.Split(c.ScriptsAfterSync, "\n") {
		if script := strings.TrimSpace(line); script != "" {
			scripts = append(scripts, script)
		}
	}
	return scripts
}

// ClonePath returns the working copy location under the workspace.
func (c *Config) ClonePath() string {
	return c.resolvePath(c.ClonedPath)
}

// DiscoveredTagsPath returns the location of the discovered-tags list.
func (c *Config) DiscoveredTagsPath() string {
	return c.resolvePath(c.DiscoveredTagsFile)
}

// SyncedBranchesPath returns the location of the synced-branches list.
func (c *Config) SyncedBranchesPath() string {
	return c.resolvePath(c.SyncedBranchesFile)
}

// CommitInfo returns the commit metadata for patch application. An unset
// message defaults to one referencing the patch location; an unset
// committer falls back to the author.
func (c *Config) CommitInfo() domain.CommitInfo {
	info := domain.CommitInfo{
		Message:   c.PatchMessage,
		Author:    domain.Signature{Name: c.PatchAuthor, Email: c.PatchAuthorEmail},
		Committer: domain.Signature{Name: c.PatchCommitter, Email: c.PatchCommitterEmail},
	}
	if info.Message == "" {
		info.Message = fmt.Sprintf("Apply patch from %s", c.ApplyPatch)
	}
	if info.Committer.Name == "" {
		info.Committer = info.Author
	}
	return info
}

func (c *Config) resolvePath(path string) string {
	if filepath.IsAbs(path) || c.Workspace == "" {
		return path
	}
	return filepath.Join(c.Workspace, path)
}

func bindEnvs(v *viper.Viper) error {
	bindings := [][]string{
		{"base_repository", "BASE_REPOSITORY", "TAGSYNC_BASE_REPOSITORY"},
		{"head_repository", "HEAD_REPOSITORY", "GITHUB_REPOSITORY", "TAGSYNC_HEAD_REPOSITORY"},
		{"workspace", "GITHUB_WORKSPACE", "TAGSYNC_WORKSPACE"},
		{"cloned_path", "CLONED_PATH", "TAGSYNC_CLONED_PATH"},
		{"filter_tags", "FILTER_TAGS", "TAGSYNC_FILTER_TAGS"},
		{"filter_semver", "FILTER_SEMVER", "TAGSYNC_FILTER_SEMVER"},
		{"apply_patch", "APPLY_PATCH", "TAGSYNC_APPLY_PATCH"},
		{"patch_message", "PATCH_MESSAGE", "TAGSYNC_PATCH_MESSAGE"},
		{"patch_author", "PATCH_AUTHOR", "TAGSYNC_PATCH_AUTHOR"},
		{"patch_author_email", "PATCH_AUTHOR_EMAIL", "TAGSYNC_PATCH_AUTHOR_EMAIL"},
		{"patch_committer", "PATCH_COMMITTER", "TAGSYNC_PATCH_COMMITTER"},
		{"patch_committer_email", "PATCH_COMMITTER_EMAIL", "TAGSYNC_PATCH_COMMITTER_EMAIL"},
		{"scripts_after_sync", "SCRIPTS_AFTER_SYNC", "TAGSYNC_SCRIPTS_AFTER_SYNC"},
		{"github_token", "GITHUB_TOKEN", "TAGSYNC_GITHUB_TOKEN"},
		{"discovered_tags_file", "DISCOVERED_TAGS_FILE", "TAGSYNC_DISCOVERED_TAGS_FILE"},
		{"synced_branches_file", "SYNCED_BRANCHES_FILE", "TAGSYNC_SYNCED_BRANCHES_FILE"},
	}
	for _, binding := range bindings {
		if err := v.BindEnv(binding...); err != nil {
			return fmt.Errorf("failed to bind %s env: %w", binding[0], err)
		}
	}
	return nil
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".tagsync")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := bindEnvs(v); err != nil {
		return nil, err
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("workspace", defaults.Workspace)
	v.SetDefault("cloned_path", defaults.ClonedPath)
	v.SetDefault("filter_tags", defaults.FilterTags)
	v.SetDefault("patch_author", defaults.PatchAuthor)
	v.SetDefault("patch_author_email", defaults.PatchAuthorEmail)
	v.SetDefault("discovered_tags_file", defaults.DiscoveredTagsFile)
	v.SetDefault("synced_branches_file", defaults.SyncedBranchesFile)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
