// Package content reads metadata about the brand book's source directory.
package content

import (
	git "github.com/go-git/go-git/v5"
)

// Revision returns the short HEAD hash of the repository containing dir.
// A directory outside any repository, or a repository without commits,
// yields the empty string; the footer simply omits the revision.
func Revision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	return head.Hash().String()[:7]
}
