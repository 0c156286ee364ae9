package sidechannel_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/sidechannel"
)

const (
	testPublishedPathConstant = "/home/user/works/cln/backend/main"
)

var temporaryFileNamePattern = regexp.MustCompile(`^cln_cd_path_\d+_\d+_[0-9a-f]{32}$`)

func TestTempFilePublisherWritesPathAndMarker(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	temporaryDirectory := testInstance.TempDir()
	publisher, creationError := sidechannel.NewTempFilePublisher(outputBuffer, sidechannel.WithDirectory(temporaryDirectory))
	require.NoError(testInstance, creationError)

	token, publishError := publisher.Publish(testPublishedPathConstant)
	require.NoError(testInstance, publishError)

	require.Equal(testInstance, temporaryDirectory, filepath.Dir(token))
	require.Regexp(testInstance, temporaryFileNamePattern, filepath.Base(token))
	require.Equal(testInstance, sidechannel.MarkerPrefix+token+"\n", outputBuffer.String())

	contentBytes, readError := os.ReadFile(token)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testPublishedPathConstant, string(contentBytes))

	if runtime.GOOS != "windows" {
		fileInfo, statError := os.Stat(token)
		require.NoError(testInstance, statError)
		require.Equal(testInstance, os.FileMode(0o600), fileInfo.Mode().Perm())
	}
}

func TestTempFilePublisherNamesAreUnique(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	publisher, creationError := sidechannel.NewTempFilePublisher(&bytes.Buffer{}, sidechannel.WithDirectory(temporaryDirectory))
	require.NoError(testInstance, creationError)

	seen := map[string]struct{}{}
	for iteration := 0; iteration < 20; iteration++ {
		token, publishError := publisher.Publish(testPublishedPathConstant)
		require.NoError(testInstance, publishError)
		_, duplicate := seen[token]
		require.False(testInstance, duplicate)
		seen[token] = struct{}{}
	}
}

func TestTempFilePublisherRefusesExistingFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	fixedTime := time.UnixMilli(1700000000000)
	zeroRandom := func() *bytes.Reader { return bytes.NewReader(make([]byte, 32)) }

	firstPublisher, firstError := sidechannel.NewTempFilePublisher(&bytes.Buffer{},
		sidechannel.WithDirectory(temporaryDirectory),
		sidechannel.WithClock(func() time.Time { return fixedTime }),
		sidechannel.WithRandomSource(zeroRandom()),
	)
	require.NoError(testInstance, firstError)
	token, publishError := firstPublisher.Publish(testPublishedPathConstant)
	require.NoError(testInstance, publishError)
	require.True(testInstance, strings.HasSuffix(token, "_1700000000000_"+strings.Repeat("0", 32)))

	markerBuffer := &bytes.Buffer{}
	secondPublisher, secondError := sidechannel.NewTempFilePublisher(markerBuffer,
		sidechannel.WithDirectory(temporaryDirectory),
		sidechannel.WithClock(func() time.Time { return fixedTime }),
		sidechannel.WithRandomSource(zeroRandom()),
	)
	require.NoError(testInstance, secondError)
	_, collisionError := secondPublisher.Publish("/elsewhere")
	require.Error(testInstance, collisionError)
	require.True(testInstance, errors.Is(collisionError, os.ErrExist))
	require.Empty(testInstance, markerBuffer.String())

	contentBytes, readError := os.ReadFile(token)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testPublishedPathConstant, string(contentBytes))
}

func TestTempFilePublisherValidation(testInstance *testing.T) {
	_, creationError := sidechannel.NewTempFilePublisher(nil)
	require.ErrorIs(testInstance, creationError, sidechannel.ErrWriterNotConfigured)

	publisher, creationError := sidechannel.NewTempFilePublisher(&bytes.Buffer{}, sidechannel.WithDirectory(testInstance.TempDir()))
	require.NoError(testInstance, creationError)
	_, publishError := publisher.Publish("")
	require.ErrorIs(testInstance, publishError, sidechannel.ErrEmptyPath)
}

func TestTempFilePublisherReportsRandomSourceFailure(testInstance *testing.T) {
	publisher, creationError := sidechannel.NewTempFilePublisher(&bytes.Buffer{},
		sidechannel.WithDirectory(testInstance.TempDir()),
		sidechannel.WithRandomSource(bytes.NewReader(nil)),
	)
	require.NoError(testInstance, creationError)

	_, publishError := publisher.Publish(testPublishedPathConstant)
	require.Error(testInstance, publishError)
	require.Contains(testInstance, publishError.Error(), "generate temp file suffix")
}
