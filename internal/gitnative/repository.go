// Package gitnative implements the release's source-control operations
// in-process with go-git, for machines without a git binary.
package gitnative

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"vtt-release/internal/model"
	"vtt-release/internal/vcs"
)

// Repository adapts a go-git repository to vcs.Repository.
type Repository struct {
	repo *git.Repository
	// Author signs commits and tags. When nil, go-git reads user.name and
	// user.email from the repository config.
	Author *object.Signature
}

var _ vcs.Repository = (*Repository)(nil)

// Open an existing repo, searching parent directories for .git.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}
	return New(repo), nil
}

func New(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

// SignAs sets the identity used for release commits and tags.
func (r *Repository) SignAs(name, email string) {
	r.Author = &object.Signature{Name: name, Email: email}
}

func (r *Repository) Subjects(ctx context.Context, rng model.Range, limit int) ([]string, error) {
	head, err := r.commit(rng.Head())
	if err != nil {
		return nil, err
	}

	seen := map[plumbing.Hash]bool{}
	if rng.From != "" {
		from, err := r.commit(rng.From)
		if err != nil {
			return nil, err
		}
		ancestors := object.NewCommitPreorderIter(from, nil, nil)
		if err := ancestors.ForEach(func(c *object.Commit) error {
			seen[c.Hash] = true
			return nil
		}); err != nil {
			return nil, fmt.Errorf("walk %s: %w", rng.From, err)
		}
	}

	var subjects []string
	iter := object.NewCommitIterCTime(head, seen, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		subjects = append(subjects, subject(c.Message))
		if rng.From == "" && limit > 0 && len(subjects) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", rng, err)
	}
	return subjects, nil
}

// LatestTag walks history from HEAD, newest commit first, and returns the
// first tagged commit's tag. Ties on one commit go to the highest name.
func (r *Repository) LatestTag(ctx context.Context, exclude string) (string, error) {
	tagged, err := r.tagsByCommit(exclude)
	if err != nil {
		return "", err
	}
	if len(tagged) == 0 {
		return "", vcs.ErrNoTag
	}

	head, err := r.commit("HEAD")
	if err != nil {
		return "", err
	}

	var found string
	err = object.NewCommitIterCTime(head, nil, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if names, ok := tagged[c.Hash]; ok {
			sort.Sort(sort.Reverse(sort.StringSlice(names)))
			found = names[0]
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walk history: %w", err)
	}
	if found == "" {
		return "", vcs.ErrNoTag
	}
	return found, nil
}

func (r *Repository) AddAll(ctx context.Context) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	return nil
}

func (r *Repository) Commit(ctx context.Context, message string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	if _, err := w.Commit(message, &git.CommitOptions{Author: r.signature()}); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *Repository) Tag(ctx context.Context, name, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Message: message,
		Tagger:  r.signature(),
	})
	if err != nil {
		return fmt.Errorf("tag %s: %w", name, err)
	}
	return nil
}

// Push local ref to remote; ref is a branch or tag short name.
func (r *Repository) Push(ctx context.Context, remote, ref string) error {
	spec := r.refSpec(ref)
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("push %s to %s: %w", ref, remote, err)
	}
	return nil
}

func (r *Repository) refSpec(ref string) config.RefSpec {
	name := plumbing.NewBranchReferenceName(ref)
	if _, err := r.repo.Reference(plumbing.NewTagReferenceName(ref), false); err == nil {
		name = plumbing.NewTagReferenceName(ref)
	}
	return config.RefSpec(fmt.Sprintf("%s:%s", name, name))
}

func (r *Repository) commit(rev string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", rev, err)
	}
	c, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", rev, err)
	}
	return c, nil
}

func (r *Repository) tagsByCommit(exclude string) (map[plumbing.Hash][]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	tagged := map[plumbing.Hash][]string{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if name == exclude {
			return nil
		}
		hash := ref.Hash()
		if tag, err := r.repo.TagObject(hash); err == nil {
			c, err := tag.Commit()
			if err != nil {
				// tags on trees or blobs never describe a commit
				return nil
			}
			hash = c.Hash
		}
		tagged[hash] = append(tagged[hash], name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tagged, nil
}

func (r *Repository) signature() *object.Signature {
	if r.Author == nil {
		return nil
	}
	sig := *r.Author
	sig.When = time.Now()
	return &sig
}

// subject mirrors git's %s: the first paragraph, lines joined by spaces.
func subject(message string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(message), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}
