package gitrepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/arumata/gitline/internal/usecase"
)

func newTestAdapter() *Adapter {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// initRepo creates an empty repository with "main" as the initial branch.
func initRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false, git.WithDefaultBranch(plumbing.Main))
	if err != nil {
		t.Fatal(err)
	}
	return repo, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content, msg string) plumbing.Hash {
	t.Helper()
	writeFile(t, dir, name, content)
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func openHandle(t *testing.T, dir string) usecase.RepoHandle {
	t.Helper()
	handle, err := newTestAdapter().Open(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	return handle
}

func TestOpen_MissingRepository(t *testing.T) {
	_, err := newTestAdapter().Open(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error for directory without repository")
	}
	var re *usecase.RepoError
	if !errors.As(err, &re) || re.Code != usecase.RepoOpenFailed {
		t.Errorf("expected open-failed error, got %v", err)
	}
}

func TestOpen_BareRepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, true); err != nil {
		t.Fatal(err)
	}

	_, err := newTestAdapter().Open(context.Background(), dir)
	if err == nil {
		t.Fatal("expected error for bare repository")
	}
	var re *usecase.RepoError
	if !errors.As(err, &re) || re.Code != usecase.RepoBare {
		t.Fatalf("expected bare-repository error, got %v", err)
	}
	if re.Message != "Cannot report status on bare repository" {
		t.Errorf("unexpected message: %q", re.Message)
	}
}

func TestHead_UnbornBranch(t *testing.T) {
	_, dir := initRepo(t)
	handle := openHandle(t, dir)

	ref, err := handle.Head(context.Background())
	if err != nil {
		t.Fatalf("unborn HEAD must not be an error: %v", err)
	}
	if ref.Kind != usecase.BranchNone {
		t.Errorf("expected BranchNone, got %+v", ref)
	}
	if ref.Display() != usecase.NoBranchName {
		t.Errorf("Display() = %q, want %q", ref.Display(), usecase.NoBranchName)
	}
}

func TestHead_NamedBranch(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "initial")
	handle := openHandle(t, dir)

	ref, err := handle.Head(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Kind != usecase.BranchNamed || ref.Name != "main" {
		t.Errorf("Head() = %+v, want named main", ref)
	}
}

func TestHead_Detached(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "one", "initial")

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: hash}); err != nil {
		t.Fatal(err)
	}

	handle := openHandle(t, dir)
	ref, err := handle.Head(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Kind != usecase.BranchNone {
		t.Errorf("detached HEAD must map to BranchNone, got %+v", ref)
	}
}

func TestChanges_CleanTree(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "initial")
	handle := openHandle(t, dir)

	changes, err := handle.Changes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	index, worktree := usecase.ClassifyChanges(changes)
	if index.Any() || worktree.Any() {
		t.Errorf("clean tree produced counters index=%+v worktree=%+v", index, worktree)
	}
}

func TestChanges_Classification(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "initial")

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	// Staged new file.
	writeFile(t, dir, "staged.txt", "new")
	if _, err := wt.Add("staged.txt"); err != nil {
		t.Fatal(err)
	}
	// Unstaged modification of a tracked file.
	writeFile(t, dir, "a.txt", "changed")
	// Untracked file.
	writeFile(t, dir, "untracked.txt", "x")

	handle := openHandle(t, dir)
	changes, err := handle.Changes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	index, worktree := usecase.ClassifyChanges(changes)

	want := usecase.ChangeCounters{New: 1}
	if index != want {
		t.Errorf("index counters = %+v, want %+v", index, want)
	}
	want = usecase.ChangeCounters{New: 1, Modified: 1}
	if worktree != want {
		t.Errorf("worktree counters = %+v, want %+v", worktree, want)
	}
}

func TestChanges_StagedDeletion(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "initial")
	commitFile(t, repo, dir, "b.txt", "two", "second")

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Remove("b.txt"); err != nil {
		t.Fatal(err)
	}

	handle := openHandle(t, dir)
	changes, err := handle.Changes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	index, _ := usecase.ClassifyChanges(changes)
	if index.Deleted != 1 {
		t.Errorf("index counters = %+v, want one deletion", index)
	}
}

// setUpstream wires branch "main" to origin/main pointing at hash.
func setUpstream(t *testing.T, repo *git.Repository, hash plumbing.Hash) {
	t.Helper()
	err := repo.CreateBranch(&config.Branch{
		Name:   "main",
		Remote: "origin",
		Merge:  plumbing.Main,
	})
	if err != nil {
		t.Fatal(err)
	}
	setRemoteRef(t, repo, hash)
}

func setRemoteRef(t *testing.T, repo *git.Repository, hash plumbing.Hash) {
	t.Helper()
	name := plumbing.NewRemoteReferenceName("origin", "main")
	if err := repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		t.Fatal(err)
	}
}

func TestDivergence_NoUpstream(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "initial")

	handle := openHandle(t, dir)
	if _, err := handle.Divergence(context.Background()); err == nil {
		t.Fatal("expected error when no upstream is configured")
	}
}

func TestDivergence_UpToDate(t *testing.T) {
	repo, dir := initRepo(t)
	c1 := commitFile(t, repo, dir, "a.txt", "one", "initial")
	setUpstream(t, repo, c1)

	handle := openHandle(t, dir)
	div, err := handle.Divergence(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if div != (usecase.Divergence{}) {
		t.Errorf("Divergence() = %+v, want zero", div)
	}
}

func TestDivergence_Ahead(t *testing.T) {
	repo, dir := initRepo(t)
	c1 := commitFile(t, repo, dir, "a.txt", "one", "initial")
	setUpstream(t, repo, c1)
	commitFile(t, repo, dir, "a.txt", "two", "second")
	commitFile(t, repo, dir, "a.txt", "three", "third")

	handle := openHandle(t, dir)
	div, err := handle.Divergence(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := usecase.Divergence{Ahead: 2}
	if div != want {
		t.Errorf("Divergence() = %+v, want %+v", div, want)
	}
}

func TestDivergence_Behind(t *testing.T) {
	repo, dir := initRepo(t)
	c1 := commitFile(t, repo, dir, "a.txt", "one", "initial")
	c2 := commitFile(t, repo, dir, "a.txt", "two", "second")
	setUpstream(t, repo, c2)

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: c1, Mode: git.HardReset}); err != nil {
		t.Fatal(err)
	}

	handle := openHandle(t, dir)
	div, err := handle.Divergence(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := usecase.Divergence{Behind: 1}
	if div != want {
		t.Errorf("Divergence() = %+v, want %+v", div, want)
	}
}

func TestDivergence_Unborn(t *testing.T) {
	_, dir := initRepo(t)
	handle := openHandle(t, dir)
	if _, err := handle.Divergence(context.Background()); err == nil {
		t.Fatal("expected error for unborn HEAD")
	}
}

func TestNew_RequiresLogger(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil logger")
		}
	}()
	New(nil)
}
