package clones

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	branchSeparatorConstant          = "/"
)

// Clone is a working copy located at <managed root>/<Repository>/<Branch>.
type Clone struct {
	Repository string
	Branch     string
	Path       string
}

// discoverClones walks the managed root and returns every directory holding a .git entry, sorted by
// repository and branch. Symbolic links are not followed and a missing root yields no clones.
func discoverClones(fileSystem FileSystem, managedRoot string) ([]Clone, error) {
	repositoryEntries, readError := fileSystem.ReadDir(managedRoot)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, readError
	}

	var discovered []Clone
	for _, repositoryEntry := range repositoryEntries {
		if !isPlainDirectory(repositoryEntry) {
			continue
		}
		repositoryPath := filepath.Join(managedRoot, repositoryEntry.Name())
		walkError := walkBranches(fileSystem, repositoryPath, nil, func(branchSegments []string, clonePath string) {
			discovered = append(discovered, Clone{
				Repository: repositoryEntry.Name(),
				Branch:     strings.Join(branchSegments, branchSeparatorConstant),
				Path:       clonePath,
			})
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.SliceStable(discovered, func(first int, second int) bool {
		if discovered[first].Repository == discovered[second].Repository {
			return discovered[first].Branch < discovered[second].Branch
		}
		return discovered[first].Repository < discovered[second].Repository
	})
	return discovered, nil
}

// walkBranches descends until it meets a directory containing .git and does not look inside clones.
func walkBranches(fileSystem FileSystem, directoryPath string, branchSegments []string, visit func([]string, string)) error {
	entries, readError := fileSystem.ReadDir(directoryPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) || errors.Is(readError, fs.ErrPermission) {
			return nil
		}
		return readError
	}

	if len(branchSegments) > 0 && containsGitMetadata(entries) {
		visit(append([]string(nil), branchSegments...), directoryPath)
		return nil
	}

	for _, entry := range entries {
		if !isPlainDirectory(entry) || entry.Name() == gitMetadataDirectoryNameConstant {
			continue
		}
		childSegments := append(append([]string(nil), branchSegments...), entry.Name())
		if walkError := walkBranches(fileSystem, filepath.Join(directoryPath, entry.Name()), childSegments, visit); walkError != nil {
			return walkError
		}
	}
	return nil
}

func containsGitMetadata(entries []fs.DirEntry) bool {
	for _, entry := range entries {
		if entry.Name() == gitMetadataDirectoryNameConstant {
			return true
		}
	}
	return false
}

func isPlainDirectory(entry fs.DirEntry) bool {
	return entry.IsDir() && entry.Type()&fs.ModeSymlink == 0
}
