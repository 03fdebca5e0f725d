package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhq/meshkube/internal/cluster"
	"github.com/bernhq/meshkube/internal/storage"
)

func TestUp(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("kubectl get", "NotFound") // nothing deployed yet

	require.NoError(t, Up(context.Background(), testOptions()))

	// Join token saved locally and well-formed.
	data, err := os.ReadFile(cluster.TokenFilename)
	require.NoError(t, err)
	token := strings.TrimSpace(string(data))
	assert.True(t, cluster.IsToken(token), "token %q", token)

	// Storage manifest written before any apply, NAS coordinates verbatim.
	manifest, err := os.ReadFile(storage.ManifestFilename)
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "server: 10.0.0.80")
	assert.Contains(t, string(manifest), "path: /share/meshroom")

	// All three images built, all seven objects applied, plus the storage
	// manifest and secret.
	assert.Equal(t, 3, runner.CallCount("docker build"))
	assert.Equal(t, 9, runner.CallCount("kubectl apply -f"))
	assert.Equal(t, 1, runner.CallCount("kubectl config use-context docker-desktop"))
}

func TestUp_SkipsExistingImagesAndObjects(t *testing.T) {
	runner := setupHandlerTest(t)
	// Unmatched probes succeed: every image exists, every object exists.

	require.NoError(t, Up(context.Background(), testOptions()))
	assert.Zero(t, runner.CallCount("docker build"))
	// Only the storage manifest and secret get applied.
	assert.Equal(t, 2, runner.CallCount("kubectl apply -f"))
}

func TestUp_ApplyFailureStillReportsStatus(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("kubectl get", "NotFound")
	runner.Fail("kubectl apply", "error: error validating data")

	err := Up(context.Background(), testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bring-up finished with failures")

	// The manifest and token still landed on disk.
	_, statErr := os.Stat(storage.ManifestFilename)
	assert.NoError(t, statErr)
	_, statErr = os.Stat(cluster.TokenFilename)
	assert.NoError(t, statErr)

	// Deployment steps were still attempted after the storage failure.
	assert.Equal(t, 7, runner.CallCount("kubectl get"))
}

func TestUp_BuildFailureDoesNotAbort(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("docker image inspect", "No such image")
	runner.Fail("docker build -t meshroom-worker:latest", "COPY failed")

	err := Up(context.Background(), testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required image builds failed")
	assert.Contains(t, err.Error(), "worker")

	// Storage and deployment still ran.
	assert.GreaterOrEqual(t, runner.CallCount("kubectl apply -f"), 2)
}

func TestUp_RuntimeDownFailsEarly(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("docker info", "Cannot connect to the Docker daemon")

	err := Up(context.Background(), testOptions())
	require.Error(t, err)

	// Nothing past the bootstrap ran.
	assert.Zero(t, runner.CallCount("docker build"))
	assert.Zero(t, runner.CallCount("kubectl apply"))
	_, statErr := os.Stat(storage.ManifestFilename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUp_PublishesTokenToShare(t *testing.T) {
	setupHandlerTest(t)
	shareDir := t.TempDir()

	opts := testOptions()
	opts.SharedDir = shareDir
	require.NoError(t, Up(context.Background(), opts))

	published, err := os.ReadFile(filepath.Join(shareDir, cluster.TokenFilename))
	require.NoError(t, err)
	assert.NotEmpty(t, published)

	manifest, err := os.ReadFile(filepath.Join(shareDir, storage.ManifestFilename))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "server: 10.0.0.80")
}
