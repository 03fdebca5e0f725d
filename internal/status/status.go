// Package status projects the cluster's current state: nodes, pods,
// services, and volume claims. It is strictly read-only.
package status

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// NodeInfo is one node row of the report.
type NodeInfo struct {
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
}

// PodInfo is one pod row of the report.
type PodInfo struct {
	Name     string `json:"name"`
	Phase    string `json:"phase"`
	Ready    string `json:"ready"` // "2/2"
	Restarts int32  `json:"restarts"`
}

// ServiceInfo is one service row of the report.
type ServiceInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ClusterIP string `json:"clusterIP"`
	Ports     string `json:"ports"`
}

// ClaimInfo is one volume-claim row of the report.
type ClaimInfo struct {
	Name     string `json:"name"`
	Phase    string `json:"phase"`
	Capacity string `json:"capacity"`
}

// Snapshot is one point-in-time projection of cluster state.
type Snapshot struct {
	Namespace string        `json:"namespace"`
	Nodes     []NodeInfo    `json:"nodes"`
	Pods      []PodInfo     `json:"pods"`
	Services  []ServiceInfo `json:"services"`
	Claims    []ClaimInfo   `json:"claims"`
}

// ReadyNodes counts nodes reporting Ready.
func (s *Snapshot) ReadyNodes() int {
	n := 0
	for _, node := range s.Nodes {
		if node.Ready {
			n++
		}
	}
	return n
}

// RunningPods counts pods in the Running phase.
func (s *Snapshot) RunningPods() int {
	n := 0
	for _, pod := range s.Pods {
		if pod.Phase == string(corev1.PodRunning) {
			n++
		}
	}
	return n
}

// Verifier reads cluster state through a Kubernetes client.
type Verifier struct {
	client    kubernetes.Interface
	namespace string
}

// NewVerifier wires a Verifier for the given namespace.
func NewVerifier(client kubernetes.Interface, namespace string) *Verifier {
	return &Verifier{client: client, namespace: namespace}
}

// NewClientset builds a clientset from a kubeconfig file. An empty path
// uses the default location.
func NewClientset(kubeconfigPath string) (kubernetes.Interface, error) {
	if kubeconfigPath == "" {
		kubeconfigPath = clientcmd.RecommendedHomeFile
	}
	restCfg, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	client, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, nil
}

// Snapshot collects the current node, pod, service, and claim state.
func (v *Verifier) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Namespace: v.namespace}

	nodes, err := v.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	for _, node := range nodes.Items {
		snap.Nodes = append(snap.Nodes, NodeInfo{
			Name:    node.Name,
			Ready:   nodeReady(&node),
			Version: node.Status.NodeInfo.KubeletVersion,
		})
	}

	pods, err := v.client.CoreV1().Pods(v.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	for _, pod := range pods.Items {
		snap.Pods = append(snap.Pods, podInfo(&pod))
	}

	services, err := v.client.CoreV1().Services(v.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	for _, svc := range services.Items {
		snap.Services = append(snap.Services, ServiceInfo{
			Name:      svc.Name,
			Type:      string(svc.Spec.Type),
			ClusterIP: svc.Spec.ClusterIP,
			Ports:     servicePorts(&svc),
		})
	}

	claims, err := v.client.CoreV1().PersistentVolumeClaims(v.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list volume claims: %w", err)
	}
	for _, claim := range claims.Items {
		snap.Claims = append(snap.Claims, claimInfo(&claim))
	}

	sortSnapshot(snap)
	return snap, nil
}

func nodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

func podInfo(pod *corev1.Pod) PodInfo {
	ready := 0
	var restarts int32
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
		restarts += cs.RestartCount
	}
	return PodInfo{
		Name:     pod.Name,
		Phase:    string(pod.Status.Phase),
		Ready:    fmt.Sprintf("%d/%d", ready, len(pod.Spec.Containers)),
		Restarts: restarts,
	}
}

func servicePorts(svc *corev1.Service) string {
	parts := make([]string, 0, len(svc.Spec.Ports))
	for _, p := range svc.Spec.Ports {
		parts = append(parts, fmt.Sprintf("%d/%s", p.Port, p.Protocol))
	}
	return strings.Join(parts, ",")
}

func claimInfo(claim *corev1.PersistentVolumeClaim) ClaimInfo {
	capacity := ""
	if qty, ok := claim.Status.Capacity[corev1.ResourceStorage]; ok {
		capacity = qty.String()
	}
	return ClaimInfo{
		Name:     claim.Name,
		Phase:    string(claim.Status.Phase),
		Capacity: capacity,
	}
}

func sortSnapshot(snap *Snapshot) {
	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].Name < snap.Nodes[j].Name })
	sort.Slice(snap.Pods, func(i, j int) bool { return snap.Pods[i].Name < snap.Pods[j].Name })
	sort.Slice(snap.Services, func(i, j int) bool { return snap.Services[i].Name < snap.Services[j].Name })
	sort.Slice(snap.Claims, func(i, j int) bool { return snap.Claims[i].Name < snap.Claims[j].Name })
}
