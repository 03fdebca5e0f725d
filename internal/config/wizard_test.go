package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResultToConfig(t *testing.T) {
	r := &WizardResult{
		ClusterName: "studio",
		MasterIP:    "10.0.0.226",
		NASIP:       "10.0.0.80",
		NASPath:     "/share/meshroom",
		WorkerCount: 3,
	}

	cfg := r.ToConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "studio", cfg.ClusterName)
	assert.Equal(t, 3, cfg.WorkerReplicas)
	assert.Equal(t, DefaultNamespace, cfg.Namespace)
	assert.Equal(t, DefaultNASUser, cfg.NASUsername)
}

func TestValidateIP(t *testing.T) {
	assert.NoError(t, validateIP("10.0.0.226"))
	assert.NoError(t, validateIP(" 10.0.0.80 "))
	assert.Error(t, validateIP("10.0.0"))
	assert.Error(t, validateIP(""))
}

func TestValidateExportPath(t *testing.T) {
	assert.NoError(t, validateExportPath("/share/meshroom"))
	assert.Error(t, validateExportPath("share/meshroom"))
	assert.Error(t, validateExportPath(""))
}
