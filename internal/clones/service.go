package clones

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"go.uber.org/zap"

	"github.com/temirov/cln/internal/execshell"
	"github.com/temirov/cln/internal/security"
	"github.com/temirov/cln/internal/settings"
)

const (
	cloneDirectoryPermissionsConstant   = 0o755
	gitCloneSubcommandConstant          = "clone"
	gitBranchFlagTemplateConstant       = "--branch=%s"
	gitEndOfOptionsConstant             = "--"
	gitTerminalPromptVariableConstant   = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant   = "0"
	gitExecutorMissingMessageConstant   = "clone service git executor not configured"
	cloneDirectoryExistsMessageConstant = "clone directory already exists"
	noMatchingClonesMessageConstant     = "no clones match the requested branch"
	managedRootInvalidMessageConstant   = "managed root must be an absolute path"
	clonePathEscapeReasonConstant       = "clone path resolves outside the managed root"
	cloneParentEscapeReasonConstant     = "clone parent directory resolves outside the managed root"
	secureJoinErrorTemplateConstant     = "join clone path: %w"
	createParentErrorTemplateConstant   = "create clone parent directory: %w"
	inspectCloneErrorTemplateConstant   = "inspect clone directory: %w"
	cloneFailedErrorTemplateConstant    = "clone %s branch %s: %w"
	listClonesErrorTemplateConstant     = "list clones: %w"
	removeCloneErrorTemplateConstant    = "remove clone %s/%s: %w"
	logMessageCloneStarting             = "cloning repository"
	logMessageCloneCompleted            = "clone completed"
	logMessageCloneRemoved              = "clone removed"
	logMessageEmptyDirectoryPruned      = "empty directory pruned"
	logFieldRepositoryConstant          = "repository"
	logFieldBranchConstant              = "branch"
	logFieldPathConstant                = "path"
)

var (
	// ErrGitExecutorNotConfigured indicates the service was constructed without a git executor.
	ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

	// ErrCloneDirectoryExists indicates the destination of a clone is already present.
	ErrCloneDirectoryExists = errors.New(cloneDirectoryExistsMessageConstant)

	// ErrNoMatchingClones indicates no clone of the requested branch exists under the managed root.
	ErrNoMatchingClones = errors.New(noMatchingClonesMessageConstant)

	// ErrManagedRootInvalid indicates a relative or empty managed root.
	ErrManagedRootInvalid = errors.New(managedRootInvalidMessageConstant)
)

// ServiceDependencies enumerates collaborators required by the clone service.
type ServiceDependencies struct {
	FileSystem  FileSystem
	GitExecutor execshell.GitExecutor
	Logger      *zap.Logger
}

// CloneOptions identifies the clone to create.
type CloneOptions struct {
	RepositoryName string
	BranchName     string
	Timeout        time.Duration
}

// Service creates, lists and removes clones below a managed root.
type Service struct {
	fileSystem  FileSystem
	gitExecutor execshell.GitExecutor
	logger      *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{fileSystem: fileSystem, gitExecutor: dependencies.GitExecutor, logger: logger}, nil
}

// ResolveClonePath sanitizes both identifiers and joins them under managedRoot. The result is
// guaranteed to be a strict descendant of managedRoot even when directories on the way are symlinks.
func (service *Service) ResolveClonePath(managedRoot string, rawRepository string, rawBranch string) (Clone, error) {
	if len(managedRoot) == 0 || !filepath.IsAbs(managedRoot) {
		return Clone{}, ErrManagedRootInvalid
	}
	cleanRoot := filepath.Clean(managedRoot)

	repositoryName, repositoryError := security.SanitizeRepositoryName(rawRepository)
	if repositoryError != nil {
		return Clone{}, repositoryError
	}
	branchName, branchError := security.SanitizeBranchName(rawBranch)
	if branchError != nil {
		return Clone{}, branchError
	}

	clonePath, joinError := securejoin.SecureJoin(cleanRoot, filepath.Join(repositoryName, filepath.FromSlash(branchName)))
	if joinError != nil {
		return Clone{}, fmt.Errorf(secureJoinErrorTemplateConstant, joinError)
	}

	if removalError := security.ValidateRemovalPath(clonePath, cleanRoot); removalError != nil {
		return Clone{}, security.ValidationError{Kind: security.ErrorKindPathEscape, Reason: clonePathEscapeReasonConstant}
	}

	return Clone{Repository: repositoryName, Branch: branchName, Path: clonePath}, nil
}

// Clone runs git clone for a registered repository into its confined destination and returns the clone.
func (service *Service) Clone(executionContext context.Context, registry settings.Settings, options CloneOptions) (Clone, error) {
	repositoryName, repositoryURL, lookupError := registry.RepositoryURL(options.RepositoryName)
	if lookupError != nil {
		return Clone{}, lookupError
	}

	managedRoot, rootError := registry.ManagedRoot()
	if rootError != nil {
		return Clone{}, rootError
	}

	clone, resolveError := service.ResolveClonePath(managedRoot, repositoryName, options.BranchName)
	if resolveError != nil {
		return Clone{}, resolveError
	}

	if _, statError := service.fileSystem.Stat(clone.Path); statError == nil {
		return Clone{}, ErrCloneDirectoryExists
	} else if !errors.Is(statError, fs.ErrNotExist) {
		return Clone{}, fmt.Errorf(inspectCloneErrorTemplateConstant, statError)
	}

	parentDirectory := filepath.Dir(clone.Path)
	if !security.ValidatePath(parentDirectory, managedRoot) {
		return Clone{}, security.ValidationError{Kind: security.ErrorKindPathEscape, Reason: cloneParentEscapeReasonConstant}
	}
	if mkdirError := service.fileSystem.MkdirAll(parentDirectory, cloneDirectoryPermissionsConstant); mkdirError != nil {
		return Clone{}, fmt.Errorf(createParentErrorTemplateConstant, mkdirError)
	}

	service.logger.Info(logMessageCloneStarting,
		zap.String(logFieldRepositoryConstant, clone.Repository),
		zap.String(logFieldBranchConstant, clone.Branch),
		zap.String(logFieldPathConstant, clone.Path),
	)

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			gitCloneSubcommandConstant,
			fmt.Sprintf(gitBranchFlagTemplateConstant, clone.Branch),
			gitEndOfOptionsConstant,
			repositoryURL,
			clone.Path,
		},
		EnvironmentVariables: map[string]string{gitTerminalPromptVariableConstant: gitTerminalPromptDisabledConstant},
		Timeout:              options.Timeout,
	}
	if _, executionError := service.gitExecutor.ExecuteGit(executionContext, commandDetails); executionError != nil {
		return Clone{}, fmt.Errorf(cloneFailedErrorTemplateConstant, clone.Repository, clone.Branch, executionError)
	}

	service.logger.Info(logMessageCloneCompleted, zap.String(logFieldPathConstant, clone.Path))
	return clone, nil
}

// List returns every clone below managedRoot.
func (service *Service) List(managedRoot string) ([]Clone, error) {
	if len(managedRoot) == 0 || !filepath.IsAbs(managedRoot) {
		return nil, ErrManagedRootInvalid
	}
	discovered, discoveryError := discoverClones(service.fileSystem, filepath.Clean(managedRoot))
	if discoveryError != nil {
		return nil, fmt.Errorf(listClonesErrorTemplateConstant, discoveryError)
	}
	return discovered, nil
}

// FindBranch returns the clones of the branch across all repositories. It fails with
// ErrNoMatchingClones when there are none.
func (service *Service) FindBranch(managedRoot string, rawBranch string) ([]Clone, error) {
	branchName, branchError := security.SanitizeBranchName(rawBranch)
	if branchError != nil {
		return nil, branchError
	}

	discovered, listError := service.List(managedRoot)
	if listError != nil {
		return nil, listError
	}

	var matches []Clone
	for _, clone := range discovered {
		if clone.Branch == branchName {
			matches = append(matches, clone)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNoMatchingClones
	}
	return matches, nil
}

// Remove deletes one clone after confirming it is a strict descendant of managedRoot, then prunes
// directories left empty between the clone and its repository directory.
func (service *Service) Remove(managedRoot string, clone Clone) error {
	if validationError := security.ValidateRemovalPath(clone.Path, managedRoot); validationError != nil {
		return validationError
	}

	if removeError := service.fileSystem.RemoveAll(clone.Path); removeError != nil {
		return fmt.Errorf(removeCloneErrorTemplateConstant, clone.Repository, clone.Branch, removeError)
	}
	service.logger.Info(logMessageCloneRemoved,
		zap.String(logFieldRepositoryConstant, clone.Repository),
		zap.String(logFieldBranchConstant, clone.Branch),
	)

	service.pruneEmptyParents(managedRoot, clone.Path)
	return nil
}

// RemoveAll deletes each clone independently and joins every failure.
func (service *Service) RemoveAll(managedRoot string, clones []Clone) ([]Clone, error) {
	var removed []Clone
	var failures []error
	for _, clone := range clones {
		if removeError := service.Remove(managedRoot, clone); removeError != nil {
			failures = append(failures, removeError)
			continue
		}
		removed = append(removed, clone)
	}
	return removed, errors.Join(failures...)
}

// RemoveBranch deletes every clone of the branch below managedRoot.
func (service *Service) RemoveBranch(managedRoot string, rawBranch string) ([]Clone, error) {
	matches, findError := service.FindBranch(managedRoot, rawBranch)
	if findError != nil {
		return nil, findError
	}
	return service.RemoveAll(managedRoot, matches)
}

// pruneEmptyParents removes empty ancestors of removedPath while they remain strict descendants of managedRoot.
func (service *Service) pruneEmptyParents(managedRoot string, removedPath string) {
	currentDirectory := filepath.Dir(removedPath)
	for security.ValidateRemovalPath(currentDirectory, managedRoot) == nil {
		entries, readError := service.fileSystem.ReadDir(currentDirectory)
		if readError != nil || len(entries) > 0 {
			return
		}
		if removeError := service.fileSystem.Remove(currentDirectory); removeError != nil {
			return
		}
		service.logger.Debug(logMessageEmptyDirectoryPruned, zap.String(logFieldPathConstant, currentDirectory))
		currentDirectory = filepath.Dir(currentDirectory)
	}
}
