// Package github resolves GitHub repository URLs into local clones so the
// generator can summarize remote repositories.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path"
	"regexp"
	"strings"
)

// ErrGitNotInstalled is returned when no git binary is available on PATH.
var ErrGitNotInstalled = errors.New("git is not installed or not on PATH")

// ownerRepoPattern matches the short "owner/repo" form.
var ownerRepoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// IsRepoURL reports whether target names a GitHub repository rather than a
// local path. Accepted forms: full http(s) github.com URLs and the short
// "owner/repo" form (as long as no such local path exists).
func IsRepoURL(target string) bool {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		u, err := url.Parse(target)
		if err != nil {
			return false
		}
		host := strings.TrimPrefix(u.Hostname(), "www.")
		return host == "github.com"
	}
	if ownerRepoPattern.MatchString(target) {
		if _, err := os.Stat(target); err == nil {
			return false
		}
		return true
	}
	return false
}

// CloneURL normalizes a repository target into a cloneable https URL.
func CloneURL(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return "https://github.com/" + target
}

// RepoName derives the repository name from a target, without the ".git"
// suffix. Used to name the generated artifact.
func RepoName(target string) string {
	u, err := url.Parse(CloneURL(target))
	if err != nil || u.Path == "" {
		return "repo"
	}
	name := path.Base(strings.TrimSuffix(u.Path, "/"))
	name = strings.TrimSuffix(name, ".git")
	if name == "" || name == "." || name == "/" {
		return "repo"
	}
	return name
}

// Clone performs a shallow clone of the repository into a fresh directory
// under baseDir (os.TempDir() when empty). The returned cleanup removes the
// clone; it is safe to call even when Clone failed.
func Clone(ctx context.Context, target string, baseDir string, logger *slog.Logger) (dir string, cleanup func(), err error) {
	cleanup = func() {}

	if _, err := exec.LookPath("git"); err != nil {
		return "", cleanup, ErrGitNotInstalled
	}

	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir, err = os.MkdirTemp(baseDir, "tldr-clone-*")
	if err != nil {
		return "", cleanup, fmt.Errorf("creating clone dir: %w", err)
	}
	cleanup = func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("failed to remove clone dir", "dir", dir, "error", err)
		}
	}

	cloneURL := CloneURL(target)
	logger.Info("cloning repository", "url", cloneURL, "dir", dir)

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", cloneURL, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("cloning %s: %w: %s", cloneURL, err, strings.TrimSpace(string(output)))
	}

	return dir, cleanup, nil
}
