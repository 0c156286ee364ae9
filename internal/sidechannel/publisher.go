package sidechannel

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// MarkerPrefix starts the line shell integrations scan for.
	MarkerPrefix = "__CLN_TEMPFILE__:"

	defaultFilePrefixConstant         = "cln_cd_path"
	temporaryFileNameTemplateConstant = "%s_%d_%d_%s"
	markerLineTemplateConstant        = "%s%s\n"
	randomSuffixByteCountConstant     = 16
	temporaryFilePermissionsConstant  = 0o600
	temporaryFileOpenFlagsConstant    = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	randomSuffixErrorTemplateConstant = "generate temp file suffix: %w"
	createTempFileErrorTemplate       = "create temp file: %w"
	writeTempFileErrorTemplate        = "write temp file: %w"
	writeMarkerErrorTemplate          = "write temp file marker: %w"
	emptyPathMessageConstant          = "published path is empty"
	writerMissingMessageConstant      = "marker writer not configured"
)

var (
	// ErrEmptyPath indicates Publish was called without a path.
	ErrEmptyPath = errors.New(emptyPathMessageConstant)

	// ErrWriterNotConfigured indicates a publisher without an output writer.
	ErrWriterNotConfigured = errors.New(writerMissingMessageConstant)
)

// Publisher hands a resolved directory back to the invoking shell and returns a token naming where it went.
type Publisher interface {
	Publish(path string) (string, error)
}

// TempFilePublisher writes the path into a fresh temp file and prints a marker line naming that file.
type TempFilePublisher struct {
	writer       io.Writer
	directory    string
	filePrefix   string
	clock        func() time.Time
	randomSource io.Reader
	processID    func() int
}

// Option customizes a TempFilePublisher.
type Option func(*TempFilePublisher)

// WithDirectory places temp files in directory instead of os.TempDir.
func WithDirectory(directory string) Option {
	return func(publisher *TempFilePublisher) {
		publisher.directory = directory
	}
}

// WithClock overrides the time source used in file names.
func WithClock(clock func() time.Time) Option {
	return func(publisher *TempFilePublisher) {
		publisher.clock = clock
	}
}

// WithRandomSource overrides crypto/rand for the file name suffix.
func WithRandomSource(source io.Reader) Option {
	return func(publisher *TempFilePublisher) {
		publisher.randomSource = source
	}
}

// NewTempFilePublisher constructs a publisher that prints its marker to writer.
func NewTempFilePublisher(writer io.Writer, options ...Option) (*TempFilePublisher, error) {
	if writer == nil {
		return nil, ErrWriterNotConfigured
	}
	publisher := &TempFilePublisher{
		writer:       writer,
		directory:    os.TempDir(),
		filePrefix:   defaultFilePrefixConstant,
		clock:        time.Now,
		randomSource: rand.Reader,
		processID:    os.Getpid,
	}
	for _, option := range options {
		if option != nil {
			option(publisher)
		}
	}
	return publisher, nil
}

// Publish writes path to <dir>/<prefix>_<pid>_<unix millis>_<32 hex chars> with mode 0600, refusing to reuse
// an existing file, and prints the marker line. It returns the temp file path.
func (publisher *TempFilePublisher) Publish(path string) (string, error) {
	if len(path) == 0 {
		return "", ErrEmptyPath
	}

	randomBytes := make([]byte, randomSuffixByteCountConstant)
	if _, readError := io.ReadFull(publisher.randomSource, randomBytes); readError != nil {
		return "", fmt.Errorf(randomSuffixErrorTemplateConstant, readError)
	}

	temporaryFileName := fmt.Sprintf(temporaryFileNameTemplateConstant,
		publisher.filePrefix,
		publisher.processID(),
		publisher.clock().UnixMilli(),
		hex.EncodeToString(randomBytes),
	)
	temporaryFilePath := filepath.Join(publisher.directory, temporaryFileName)

	temporaryFile, openError := os.OpenFile(temporaryFilePath, temporaryFileOpenFlagsConstant, temporaryFilePermissionsConstant)
	if openError != nil {
		return "", fmt.Errorf(createTempFileErrorTemplate, openError)
	}

	_, writeError := temporaryFile.WriteString(path)
	closeError := temporaryFile.Close()
	if writeError = errors.Join(writeError, closeError); writeError != nil {
		_ = os.Remove(temporaryFilePath)
		return "", fmt.Errorf(writeTempFileErrorTemplate, writeError)
	}

	if _, markerError := fmt.Fprintf(publisher.writer, markerLineTemplateConstant, MarkerPrefix, temporaryFilePath); markerError != nil {
		_ = os.Remove(temporaryFilePath)
		return "", fmt.Errorf(writeMarkerErrorTemplate, markerError)
	}

	return temporaryFilePath, nil
}
