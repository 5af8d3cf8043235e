package repofetch

import (
	"errors"
	"testing"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in        string
		wantOwner string
		wantName  string
	}{
		{"https://github.com/octocat/hello-world", "octocat", "hello-world"},
		{"http://github.com/octocat/hello-world", "octocat", "hello-world"},
		{"github.com/octocat/hello-world", "octocat", "hello-world"},
		{"octocat/hello-world", "octocat", "hello-world"},
		{"https://github.com/octocat/hello-world.git", "octocat", "hello-world"},
		{"https://github.com/octocat/hello-world/", "octocat", "hello-world"},
		{"  octocat/hello-world  ", "octocat", "hello-world"},
		{"github.com/octocat/hello-world/tree/main/src", "octocat", "hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			repo, err := ParseRepoURL(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.Owner != tt.wantOwner || repo.Name != tt.wantName {
				t.Fatalf("got %s/%s, want %s/%s", repo.Owner, repo.Name, tt.wantOwner, tt.wantName)
			}
		})
	}
}

func TestParseRepoURLRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "just-a-name", "https://github.com/", "github.com//repo"} {
		if _, err := ParseRepoURL(in); !errors.Is(err, ErrBadRepoURL) {
			t.Fatalf("ParseRepoURL(%q): expected ErrBadRepoURL, got %v", in, err)
		}
	}
}

func TestSkipFilters(t *testing.T) {
	if !skipDirs["node_modules"] || !skipDirs[".next"] {
		t.Fatal("vendored directories must be skipped")
	}
	if !skipExtensions[".png"] || !skipExtensions[".lock"] {
		t.Fatal("binary extensions must be skipped")
	}
	if skipExtensions[".js"] || skipExtensions[".go"] {
		t.Fatal("source extensions must not be skipped")
	}
}
