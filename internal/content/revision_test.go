package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisionOutsideRepository(t *testing.T) {
	assert.Equal(t, "", Revision(t.TempDir()))
}

func TestRevisionEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	assert.Equal(t, "", Revision(dir), "repository without commits has no HEAD")
}

func TestRevisionReturnsShortHash(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lensbook.yaml"), []byte("title: Guide\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("lensbook.yaml")
	require.NoError(t, err)

	hash, err := wt.Commit("add book", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	rev := Revision(dir)
	assert.Len(t, rev, 7)
	assert.Equal(t, hash.String()[:7], rev)
}

func TestRevisionDetectsDotGitFromSubdir(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "books")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "guide.yaml"), []byte("title: Guide\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("books/guide.yaml")
	require.NoError(t, err)
	_, err = wt.Commit("add guide", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, Revision(sub))
}
