// Package repofetch imports source trees from GitHub repositories so they
// can seed a workspace. Fetches are capped: large files and vendored or
// generated directories are skipped, and at most a fixed number of files is
// pulled per import.
package repofetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	// maxFiles bounds how many files one import pulls.
	maxFiles = 50
	// maxFileSize skips files larger than ~100KB.
	maxFileSize = 100000
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"coverage":     true,
}

var skipExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".ico": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true, ".pdf": true,
	".lock": true,
}

// ErrBadRepoURL is returned when a repository reference cannot be parsed.
var ErrBadRepoURL = errors.New("repofetch: unrecognized repository URL")

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// File is one fetched source file.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

// Result is a completed repository import.
type Result struct {
	Repo      string `json:"repo"`
	Branch    string `json:"branch"`
	Files     []File `json:"files"`
	Truncated bool   `json:"truncated"`
}

// ParseRepoURL accepts the repository reference formats users paste into a
// chat box: full https URLs, bare github.com paths, and owner/repo shorthand.
// A trailing .git suffix is stripped.
func ParseRepoURL(raw string) (Repo, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("%w: %q", ErrBadRepoURL, raw)
	}
	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

// Fetcher pulls repository contents from the GitHub API.
type Fetcher struct {
	client *github.Client
}

// NewFetcher creates a Fetcher. An empty token gives an unauthenticated
// client, subject to GitHub's anonymous rate limits.
func NewFetcher(token string) *Fetcher {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	return &Fetcher{client: github.NewClient(hc)}
}

// NewFetcherWithClient creates a Fetcher around an existing GitHub client,
// for tests that point at a stub server.
func NewFetcherWithClient(client *github.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch walks the repository tree from its root and collects source files,
// depth-first, skipping vendored directories, binary assets, and anything
// over the size cap. The walk stops once maxFiles files are collected;
// Result.Truncated reports whether the cap was hit.
func (f *Fetcher) Fetch(ctx context.Context, repo Repo) (*Result, error) {
	r, _, err := f.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("repofetch: get %s: %w", repo, err)
	}

	result := &Result{
		Repo:   repo.String(),
		Branch: r.GetDefaultBranch(),
	}
	if err := f.walk(ctx, repo, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

func (f *Fetcher) walk(ctx context.Context, repo Repo, dir string, result *Result) error {
	if result.Truncated {
		return nil
	}

	fileContent, dirContents, _, err := f.client.Repositories.GetContents(
		ctx, repo.Owner, repo.Name, dir, nil)
	if err != nil {
		return fmt.Errorf("repofetch: list %s/%s: %w", repo, dir, err)
	}

	// GetContents returns fileContent for file paths, dirContents for
	// directories. The walk only descends, so a file here means the caller
	// passed a file path directly.
	if fileContent != nil {
		return f.collect(ctx, repo, fileContent, result)
	}

	for _, entry := range dirContents {
		if result.Truncated {
			return nil
		}
		switch entry.GetType() {
		case "dir":
			if skipDirs[entry.GetName()] {
				continue
			}
			if err := f.walk(ctx, repo, entry.GetPath(), result); err != nil {
				return err
			}
		case "file":
			if skipExtensions[strings.ToLower(path.Ext(entry.GetName()))] {
				continue
			}
			if entry.GetSize() > maxFileSize {
				continue
			}
			if err := f.collect(ctx, repo, entry, result); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Fetcher) collect(ctx context.Context, repo Repo, entry *github.RepositoryContent, result *Result) error {
	if len(result.Files) >= maxFiles {
		result.Truncated = true
		return nil
	}

	// Directory listings omit file content, so each file needs its own
	// contents call before decoding.
	fc, _, _, err := f.client.Repositories.GetContents(
		ctx, repo.Owner, repo.Name, entry.GetPath(), nil)
	if err != nil {
		return fmt.Errorf("repofetch: fetch %s/%s: %w", repo, entry.GetPath(), err)
	}
	if fc == nil {
		return nil
	}

	content, err := fc.GetContent()
	if err != nil {
		// Binary or undecodable content slips past the extension filter
		// occasionally; skip it rather than failing the import.
		return nil
	}

	result.Files = append(result.Files, File{
		Path:    entry.GetPath(),
		Content: content,
		Size:    entry.GetSize(),
	})
	if len(result.Files) >= maxFiles {
		result.Truncated = true
	}
	return nil
}
