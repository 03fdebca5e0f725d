package kubectl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhq/meshkube/internal/execx"
)

func shortenRetryDelay(t *testing.T) {
	t.Helper()
	orig := applyRetryDelay
	applyRetryDelay = time.Millisecond
	t.Cleanup(func() { applyRetryDelay = orig })
}

func TestApply(t *testing.T) {
	runner := execx.NewFakeRunner()
	err := Apply(context.Background(), runner, "meshroom-storage", []byte("kind: Namespace\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, runner.CallCount("kubectl apply -f"))
}

func TestApply_RetriesTransientFailure(t *testing.T) {
	shortenRetryDelay(t)

	runner := execx.NewFakeRunner()
	runner.FailOnce("kubectl apply", "Unable to connect to the server: EOF")
	err := Apply(context.Background(), runner, "meshroom-storage", []byte("kind: Namespace\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, runner.CallCount("kubectl apply -f"))
}

func TestApply_ExhaustsRetries(t *testing.T) {
	shortenRetryDelay(t)

	runner := execx.NewFakeRunner()
	runner.Fail("kubectl apply", "connection refused")
	err := Apply(context.Background(), runner, "meshroom-storage", []byte("kind: Namespace\n"))
	require.Error(t, err)
	assert.Equal(t, 3, runner.CallCount("kubectl apply -f"))
}

func TestApply_ValidationErrorNotRetried(t *testing.T) {
	shortenRetryDelay(t)

	runner := execx.NewFakeRunner()
	runner.Fail("kubectl apply", "error: error validating data")
	err := Apply(context.Background(), runner, "meshroom-storage", []byte("kind: Namespace\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meshroom-storage")
	assert.Equal(t, 1, runner.CallCount("kubectl apply -f"))
}

func TestExists(t *testing.T) {
	runner := execx.NewFakeRunner()
	assert.True(t, Exists(context.Background(), runner, "namespace", "meshroom", ""))
	assert.Equal(t, []string{"kubectl get namespace meshroom"}, runner.Calls)

	runner.Fail("kubectl get deployment", "NotFound")
	assert.False(t, Exists(context.Background(), runner, "deployment", "meshroom-worker", "meshroom"))
	assert.Equal(t, 1, runner.CallCount("kubectl get deployment meshroom-worker -n meshroom"))
}

func TestDelete(t *testing.T) {
	runner := execx.NewFakeRunner()
	require.NoError(t, Delete(context.Background(), runner, "persistentvolume", "meshroom-data", ""))
	assert.Equal(t, []string{"kubectl delete persistentvolume meshroom-data --ignore-not-found"}, runner.Calls)
}

func TestDelete_Namespaced(t *testing.T) {
	runner := execx.NewFakeRunner()
	require.NoError(t, Delete(context.Background(), runner, "deployment", "meshroom-worker", "meshroom"))
	assert.Equal(t, 1, runner.CallCount("kubectl delete deployment meshroom-worker --ignore-not-found -n meshroom"))
}

func TestUseContext(t *testing.T) {
	runner := execx.NewFakeRunner()
	require.NoError(t, UseContext(context.Background(), runner, "docker-desktop"))
	assert.Equal(t, 1, runner.CallCount("kubectl config use-context docker-desktop"))

	runner.Fail("kubectl config use-context nope", "no context exists")
	err := UseContext(context.Background(), runner, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestClusterReachable(t *testing.T) {
	runner := execx.NewFakeRunner()
	assert.NoError(t, ClusterReachable(context.Background(), runner))

	runner.Fail("kubectl cluster-info", "Unable to connect to the server")
	assert.Error(t, ClusterReachable(context.Background(), runner))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable("Unable to connect to the server: EOF"))
	assert.True(t, isRetryable("dial tcp 127.0.0.1:6443: connection refused"))
	assert.True(t, isRetryable("read: connection reset by peer"))
	assert.False(t, isRetryable("error: error validating data"))
	assert.False(t, isRetryable(""))
}
