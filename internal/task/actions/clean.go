// Package actions provides the concrete task actions.
package actions

import (
	"path/filepath"

	"github.com/alexisbeaulieu97/buildscript/internal/task"
)

const (
	// CleanTaskName is the name of the default maintenance task.
	CleanTaskName = "clean"
	// BuildDirName is the build output directory under the project root.
	BuildDirName = "build"
)

// BuildOutputPath returns the build output directory for projectDir.
func BuildOutputPath(projectDir string) string {
	return filepath.Join(projectDir, BuildDirName)
}

// NewCleanTask returns the default clean task, which deletes the build output directory.
func NewCleanTask(projectDir string) task.Task {
	return task.Task{
		Name:        CleanTaskName,
		Description: "Deletes the build directory.",
		Actions:     []task.Action{NewDelete(projectDir, BuildDirName)},
	}
}
