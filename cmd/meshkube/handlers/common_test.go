package handlers

import (
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	k8sfake "k8s.io/client-go/kubernetes/fake"

	"github.com/bernhq/meshkube/internal/config"
	"github.com/bernhq/meshkube/internal/execx"
	"github.com/bernhq/meshkube/internal/logging"
	"github.com/bernhq/meshkube/internal/prompt"
)

// testOptions is the minimal flag set for an unattended run.
func testOptions() Options {
	return Options{
		MasterIP:   "10.0.0.226",
		NASIP:      "10.0.0.80",
		NASPath:    "/share/meshroom",
		Unattended: true,
	}
}

// setupHandlerTest swaps every factory for fakes, moves into a temp working
// directory, and restores everything on cleanup. The returned runner scripts
// and records all CLI invocations.
func setupHandlerTest(t *testing.T) *execx.FakeRunner {
	t.Helper()
	t.Chdir(t.TempDir())

	runner := execx.NewFakeRunner()
	client := k8sfake.NewSimpleClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "docker-desktop"},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	})

	origRunner := newRunner
	origLogger := newLogger
	origPrompter := newPrompter
	origClientset := newClientset
	origLoad := loadConfigFile
	origFind := findConfigFile
	t.Cleanup(func() {
		newRunner = origRunner
		newLogger = origLogger
		newPrompter = origPrompter
		newClientset = origClientset
		loadConfigFile = origLoad
		findConfigFile = origFind
	})

	newRunner = func() execx.Runner { return runner }
	newLogger = func(bool) *logrus.Logger { return logging.Discard() }
	newPrompter = func(bool) prompt.Prompter { return prompt.Unattended{} }
	newClientset = func(string) (kubernetes.Interface, error) { return client, nil }
	findConfigFile = func() (string, error) { return "", errors.New("config file not found") }

	return runner
}

func TestResolveConfig_FlagsOnly(t *testing.T) {
	setupHandlerTest(t)

	cfg, err := resolveConfig(testOptions())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.226", cfg.MasterIP)
	assert.Equal(t, config.DefaultNamespace, cfg.Namespace)
	assert.Equal(t, config.DefaultContext, cfg.Context)
	assert.True(t, cfg.Unattended)
}

func TestResolveConfig_FlagOverridesFile(t *testing.T) {
	setupHandlerTest(t)

	fileCfg := &config.Config{
		MasterIP:  "10.0.0.1",
		NASIP:     "10.0.0.2",
		NASPath:   "/share/old",
		Namespace: "filespace",
	}
	fileCfg.ApplyDefaults()
	require.NoError(t, config.Save(fileCfg, config.DefaultConfigFilename))

	opts := Options{ConfigPath: config.DefaultConfigFilename, NASIP: "10.0.0.80"}
	cfg, err := resolveConfig(opts)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.80", cfg.NASIP)   // flag wins
	assert.Equal(t, "10.0.0.1", cfg.MasterIP) // file value kept
	assert.Equal(t, "filespace", cfg.Namespace)
}

func TestResolveConfig_FindsFileInWorkingDir(t *testing.T) {
	setupHandlerTest(t)
	findConfigFile = config.FindConfigFile

	fileCfg := &config.Config{MasterIP: "10.0.0.1", NASIP: "10.0.0.2", NASPath: "/share/x"}
	fileCfg.ApplyDefaults()
	require.NoError(t, config.Save(fileCfg, config.DefaultConfigFilename))

	cfg, err := resolveConfig(Options{})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", cfg.MasterIP)
}

func TestResolveConfig_NothingConfigured(t *testing.T) {
	setupHandlerTest(t)

	_, err := resolveConfig(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meshkube init")
}

func TestResolveConfig_BrokenFile(t *testing.T) {
	setupHandlerTest(t)
	require.NoError(t, os.WriteFile(config.DefaultConfigFilename, []byte("masterIP: [broken"), 0o644))

	_, err := resolveConfig(Options{ConfigPath: config.DefaultConfigFilename})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestSoftFailures(t *testing.T) {
	assert.NoError(t, softFailures(nil, nil))

	err := softFailures(nil, errors.New("one"), nil, errors.New("two"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one")
	assert.Contains(t, err.Error(), "two")
}
