package handlers

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhq/meshkube/internal/cluster"
	"github.com/bernhq/meshkube/internal/status"
	"github.com/bernhq/meshkube/internal/storage"
)

func TestBuild(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("docker image inspect", "No such image")

	require.NoError(t, Build(context.Background(), testOptions()))
	assert.Equal(t, 3, runner.CallCount("docker build"))
}

func TestBuild_MissingToolFailsWithoutInstalling(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.MarkMissing("docker")

	err := Build(context.Background(), testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docker")
	assert.Contains(t, err.Error(), "https://docs.docker.com/get-docker/")

	// Read-only check: no install attempt, no build attempt.
	assert.Zero(t, runner.CallCount("docker build"))
	for _, call := range runner.Calls {
		assert.NotContains(t, call, "install")
	}
}

func TestBuild_RequiredFailureExitsNonZero(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("docker image inspect", "No such image")
	runner.Fail("docker build -t meshroom-base:latest", "COPY failed")

	err := Build(context.Background(), testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base")
}

func TestStorage(t *testing.T) {
	runner := setupHandlerTest(t)

	require.NoError(t, Storage(context.Background(), testOptions()))
	assert.Equal(t, 2, runner.CallCount("kubectl apply -f"))

	data, err := os.ReadFile(storage.ManifestFilename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server: 10.0.0.80")
}

func TestStorage_ApplyFailureKeepsManifest(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("kubectl apply", "error: error validating data")

	err := Storage(context.Background(), testOptions())
	require.Error(t, err)

	_, statErr := os.Stat(storage.ManifestFilename)
	assert.NoError(t, statErr)
}

func TestDeploy(t *testing.T) {
	runner := setupHandlerTest(t)
	runner.Fail("kubectl get", "NotFound")

	require.NoError(t, Deploy(context.Background(), testOptions()))
	assert.Equal(t, 7, runner.CallCount("kubectl apply -f"))
}

func TestDeploy_Idempotent(t *testing.T) {
	runner := setupHandlerTest(t)

	require.NoError(t, Deploy(context.Background(), testOptions()))
	assert.Zero(t, runner.CallCount("kubectl apply"))
}

func TestDown_Unattended(t *testing.T) {
	runner := setupHandlerTest(t)

	require.NoError(t, Down(context.Background(), testOptions()))
	assert.Equal(t, 1, runner.CallCount("kubectl delete namespace meshroom"))
	assert.Equal(t, 1, runner.CallCount("kubectl delete storageclass meshroom-nas"))
}

func TestDown_InteractiveDefaultAborts(t *testing.T) {
	runner := setupHandlerTest(t)

	// The unattended fake prompter resolves Confirm to its default, which
	// is "no" for interactive sessions.
	opts := testOptions()
	opts.Unattended = false
	require.NoError(t, Down(context.Background(), opts))
	assert.Zero(t, runner.CallCount("kubectl delete"))
}

func TestToken(t *testing.T) {
	setupHandlerTest(t)

	require.NoError(t, Token(context.Background(), testOptions()))

	token, err := cluster.ReadToken(cluster.TokenFilename)
	require.NoError(t, err)
	assert.True(t, cluster.IsToken(token))
}

func TestToken_UnreachableShareStillSavesLocally(t *testing.T) {
	setupHandlerTest(t)

	opts := testOptions()
	opts.SharedDir = "/mnt/absent-share"
	require.NoError(t, Token(context.Background(), opts))

	token, err := cluster.ReadToken(cluster.TokenFilename)
	require.NoError(t, err)
	assert.True(t, cluster.IsToken(token))
}

func TestToken_Regenerates(t *testing.T) {
	setupHandlerTest(t)

	require.NoError(t, Token(context.Background(), testOptions()))
	first, err := cluster.ReadToken(cluster.TokenFilename)
	require.NoError(t, err)

	require.NoError(t, Token(context.Background(), testOptions()))
	second, err := cluster.ReadToken(cluster.TokenFilename)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStatus_JSON(t *testing.T) {
	setupHandlerTest(t)
	require.NoError(t, Status(context.Background(), testOptions(), true, false))
}

func TestStatus_Plain(t *testing.T) {
	setupHandlerTest(t)
	require.NoError(t, Status(context.Background(), testOptions(), false, false))
}

func TestMonitor(t *testing.T) {
	setupHandlerTest(t)

	origDashboard := runDashboard
	t.Cleanup(func() { runDashboard = origDashboard })

	var gotName string
	runDashboard = func(_ context.Context, _ *status.Verifier, clusterName string) error {
		gotName = clusterName
		return nil
	}

	require.NoError(t, Monitor(context.Background(), testOptions()))
	assert.Equal(t, "meshroom", gotName)
}
