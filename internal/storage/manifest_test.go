package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

func TestVolume(t *testing.T) {
	pv := Volume("10.0.0.80", "/share/meshroom")

	require.NotNil(t, pv.Spec.NFS)
	assert.Equal(t, "10.0.0.80", pv.Spec.NFS.Server)
	assert.Equal(t, "/share/meshroom", pv.Spec.NFS.Path)
	assert.Equal(t, ClassName, pv.Spec.StorageClassName)
	assert.Equal(t, corev1.PersistentVolumeReclaimRetain, pv.Spec.PersistentVolumeReclaimPolicy)
	assert.Equal(t, []corev1.PersistentVolumeAccessMode{corev1.ReadWriteMany}, pv.Spec.AccessModes)
}

func TestClaim(t *testing.T) {
	pvc := Claim("meshroom")

	assert.Equal(t, ClaimName, pvc.Name)
	assert.Equal(t, "meshroom", pvc.Namespace)
	assert.Equal(t, VolumeName, pvc.Spec.VolumeName)
	require.NotNil(t, pvc.Spec.StorageClassName)
	assert.Equal(t, ClassName, *pvc.Spec.StorageClassName)
}

func TestClass(t *testing.T) {
	sc := Class()
	assert.Equal(t, ClassName, sc.Name)
	assert.Equal(t, "kubernetes.io/no-provisioner", sc.Provisioner)
}

func TestRenderManifest(t *testing.T) {
	manifest, err := RenderManifest("10.0.0.80", "/share/meshroom", "meshroom")
	require.NoError(t, err)

	text := string(manifest)
	// The NAS coordinates must appear verbatim in the rendered manifest.
	assert.Contains(t, text, "server: 10.0.0.80")
	assert.Contains(t, text, "path: /share/meshroom")
	assert.Contains(t, text, "kind: StorageClass")
	assert.Contains(t, text, "kind: PersistentVolume")
	assert.Contains(t, text, "kind: PersistentVolumeClaim")

	docs := strings.Split(text, "---\n")
	assert.Len(t, docs, 3)
}

func TestRenderSecret(t *testing.T) {
	data, err := RenderSecret("meshroom", "operator", "hunter2")
	require.NoError(t, err)

	var secret corev1.Secret
	require.NoError(t, yaml.Unmarshal(data, &secret))
	assert.Equal(t, SecretName, secret.Name)
	assert.Equal(t, "meshroom", secret.Namespace)
	assert.Equal(t, "operator", secret.StringData["username"])
	assert.Equal(t, "hunter2", secret.StringData["password"])
}
