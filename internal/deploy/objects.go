// Package deploy applies the cluster objects in a fixed, idempotent order:
// namespace, storage, workloads, service.
package deploy

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/bernhq/meshkube/internal/storage"
)

// Workload and service names.
const (
	CoordinatorName = "meshroom-coordinator"
	WorkerName      = "meshroom-worker"
	ServiceName     = "meshroom-coordinator"

	coordinatorImage = "meshroom-coordinator:latest"
	workerImage      = "meshroom-worker:latest"

	// CoordinatorPort is the coordinator's job-distribution endpoint.
	CoordinatorPort = 8080

	dataMountPath = "/data"
)

// Namespace returns the namespace object holding all workloads.
func Namespace(name string) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}
}

// Coordinator returns the single-replica coordinator deployment.
func Coordinator(namespace string) *appsv1.Deployment {
	return workload(namespace, CoordinatorName, coordinatorImage, 1)
}

// Workers returns the worker deployment with the configured replica count.
func Workers(namespace string, replicas int) *appsv1.Deployment {
	return workload(namespace, WorkerName, workerImage, int32(replicas))
}

// Service returns the cluster-internal service in front of the coordinator.
func Service(namespace string) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ServiceName,
			Namespace: namespace,
			Labels:    map[string]string{"app": CoordinatorName},
		},
		Spec: corev1.ServiceSpec{
			Selector: map[string]string{"app": CoordinatorName},
			Ports: []corev1.ServicePort{
				{
					Name:       "jobs",
					Port:       CoordinatorPort,
					TargetPort: intstr.FromInt32(CoordinatorPort),
				},
			},
		},
	}
}

func workload(namespace, name, image string, replicas int32) *appsv1.Deployment {
	labels := map[string]string{"app": name}
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  name,
							Image: image,
							// Images are built locally; never pull from a registry
							ImagePullPolicy: corev1.PullNever,
							VolumeMounts: []corev1.VolumeMount{
								{Name: "data", MountPath: dataMountPath},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: "data",
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: storage.ClaimName,
								},
							},
						},
					},
				},
			},
		},
	}
}
