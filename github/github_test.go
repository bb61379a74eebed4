package github

import (
	"os"
	"testing"
)

func Test_IsRepoURL_FullURLs(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/user/repo":     true,
		"https://github.com/user/repo.git": true,
		"http://github.com/user/repo":      true,
		"https://www.github.com/user/repo": true,
		"https://gitlab.com/user/repo":     false,
		"https://example.com/github.com":   false,
	}
	for target, want := range cases {
		if got := IsRepoURL(target); got != want {
			t.Errorf("IsRepoURL(%q) = %v, want %v", target, got, want)
		}
	}
}

func Test_IsRepoURL_ShortForm(t *testing.T) {
	if !IsRepoURL("torvalds/linux") {
		t.Error("owner/repo form should be treated as a repository")
	}
	if IsRepoURL("just-a-name") {
		t.Error("single segment is not a repository")
	}
	if IsRepoURL("a/b/c") {
		t.Error("three segments is not the short form")
	}
}

func Test_IsRepoURL_ExistingLocalPathWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("owner/repo", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if IsRepoURL("owner/repo") {
		t.Error("existing local path should not be treated as a repository")
	}
}

func Test_RepoName(t *testing.T) {
	cases := map[string]string{
		"https://github.com/user/repo":      "repo",
		"https://github.com/user/repo.git":  "repo",
		"https://github.com/user/repo/":     "repo",
		"torvalds/linux":                    "linux",
		"https://github.com/user/my.tool":   "my.tool",
	}
	for target, want := range cases {
		if got := RepoName(target); got != want {
			t.Errorf("RepoName(%q) = %q, want %q", target, got, want)
		}
	}
}

func Test_CloneURL(t *testing.T) {
	if got := CloneURL("user/repo"); got != "https://github.com/user/repo" {
		t.Errorf("unexpected clone URL %q", got)
	}
	if got := CloneURL("https://github.com/user/repo"); got != "https://github.com/user/repo" {
		t.Errorf("full URLs should pass through, got %q", got)
	}
}
