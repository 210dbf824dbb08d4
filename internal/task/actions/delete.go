package actions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// ErrOutsideProject is the cause of a DeletionFailedError for a path that
// escapes the project directory or names the directory itself.
var ErrOutsideProject = errors.New("path is not inside the project directory")

// Delete recursively removes paths relative to a project root.
type Delete struct {
	Root  string
	Paths []string
}

// NewDelete creates a delete action confined to root.
func NewDelete(root string, paths ...string) *Delete {
	return &Delete{Root: root, Paths: append([]string(nil), paths...)}
}

// Describe summarises the action.
func (d *Delete) Describe() string {
	return "delete " + strings.Join(d.Paths, ", ")
}

// Plan reports which paths exist and would be removed.
func (d *Delete) Plan(ctx context.Context) (string, error) {
	var present []string
	for _, p := range d.Paths {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		target, err := d.resolve(p)
		if err != nil {
			return "", err
		}
		if _, err := os.Lstat(target); err == nil {
			present = append(present, target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", bserrors.NewDeletionFailedError(target, err)
		}
	}

	if len(present) == 0 {
		return "nothing to delete", nil
	}
	return "would delete " + strings.Join(present, ", "), nil
}

// Run removes every path and its contents. A missing path is a no-op. On
// failure the filesystem is left in whatever state the removal reached.
func (d *Delete) Run(ctx context.Context) error {
	for _, p := range d.Paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := d.resolve(p)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(target); err != nil {
			return bserrors.NewDeletionFailedError(target, err)
		}
	}
	return nil
}

// resolve confines p to the project root. Symlinks in the root and in the
// target's parent directories are followed before the check; the final
// element is kept as-is so a symlink target removes only the link.
func (d *Delete) resolve(p string) (string, error) {
	root, err := filepath.Abs(d.Root)
	if err != nil {
		return "", bserrors.NewDeletionFailedError(p, fmt.Errorf("resolve project root: %w", err))
	}

	target := p
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)
	if !within(root, target) {
		return "", bserrors.NewDeletionFailedError(target, ErrOutsideProject)
	}

	realRoot, err := evalExisting(root)
	if err != nil {
		return "", bserrors.NewDeletionFailedError(target, fmt.Errorf("resolve project root: %w", err))
	}
	realParent, err := evalExisting(filepath.Dir(target))
	if err != nil {
		return "", bserrors.NewDeletionFailedError(target, err)
	}
	if !within(realRoot, filepath.Join(realParent, filepath.Base(target))) {
		return "", bserrors.NewDeletionFailedError(target, ErrOutsideProject)
	}
	return target, nil
}

// within reports whether target lies strictly below root.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// evalExisting follows symlinks along the longest existing prefix of path and
// appends the missing remainder unchanged.
func evalExisting(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
		return "", err
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	head, err := evalExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(head, filepath.Base(path)), nil
}
