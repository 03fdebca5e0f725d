// Package storage binds the network share into the cluster: a storage
// class, a persistent volume pointing at the NAS export, a claim for the
// workloads, and a credentials secret.
package storage

import (
	"bytes"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// Object names shared with the deployment applier.
const (
	ClassName  = "meshroom-nas"
	VolumeName = "meshroom-data"
	ClaimName  = "meshroom-data"
	SecretName = "nas-credentials"

	// ManifestFilename is where the rendered manifest is written locally
	// before any apply is attempted.
	ManifestFilename = "meshroom-storage.yaml"
)

// capacity is the advertised size of the share-backed volume. The NAS is
// the real limit; the value only has to satisfy the claim.
var capacity = resource.MustParse("500Gi")

// Class returns the storage class for statically provisioned NAS volumes.
func Class() *storagev1.StorageClass {
	bindingMode := storagev1.VolumeBindingImmediate
	reclaim := corev1.PersistentVolumeReclaimRetain
	return &storagev1.StorageClass{
		TypeMeta: metav1.TypeMeta{APIVersion: "storage.k8s.io/v1", Kind: "StorageClass"},
		ObjectMeta: metav1.ObjectMeta{
			Name: ClassName,
		},
		Provisioner:       "kubernetes.io/no-provisioner",
		ReclaimPolicy:     &reclaim,
		VolumeBindingMode: &bindingMode,
	}
}

// Volume returns the persistent volume bound to the NAS export.
func Volume(nasIP, nasPath string) *corev1.PersistentVolume {
	return &corev1.PersistentVolume{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolume"},
		ObjectMeta: metav1.ObjectMeta{
			Name: VolumeName,
		},
		Spec: corev1.PersistentVolumeSpec{
			Capacity: corev1.ResourceList{
				corev1.ResourceStorage: capacity,
			},
			AccessModes: []corev1.PersistentVolumeAccessMode{
				corev1.ReadWriteMany,
			},
			PersistentVolumeReclaimPolicy: corev1.PersistentVolumeReclaimRetain,
			StorageClassName:              ClassName,
			PersistentVolumeSource: corev1.PersistentVolumeSource{
				NFS: &corev1.NFSVolumeSource{
					Server: nasIP,
					Path:   nasPath,
				},
			},
		},
	}
}

// Claim returns the namespace-scoped claim the workloads mount.
func Claim(namespace string) *corev1.PersistentVolumeClaim {
	className := ClassName
	return &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ClaimName,
			Namespace: namespace,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{
				corev1.ReadWriteMany,
			},
			StorageClassName: &className,
			VolumeName:       VolumeName,
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: capacity,
				},
			},
		},
	}
}

// CredentialsSecret wraps the share credentials for in-cluster mounts.
func CredentialsSecret(namespace, username, password string) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      SecretName,
			Namespace: namespace,
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			"username": username,
			"password": password,
		},
	}
}

// RenderManifest marshals class, volume, and claim into one multi-document
// YAML manifest. Regenerated on every run; there is no versioning.
func RenderManifest(nasIP, nasPath, namespace string) ([]byte, error) {
	return renderDocuments(Class(), Volume(nasIP, nasPath), Claim(namespace))
}

// RenderSecret marshals the credentials secret.
func RenderSecret(namespace, username, password string) ([]byte, error) {
	return renderDocuments(CredentialsSecret(namespace, username, password))
}

func renderDocuments(objs ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	for i, obj := range objs {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal manifest document: %w", err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
