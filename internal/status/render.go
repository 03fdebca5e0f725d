package status

import (
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/bernhq/meshkube/internal/ui"
)

// RenderJSON serializes the snapshot for machine consumption.
func RenderJSON(snap *Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal status: %w", err)
	}
	return string(data), nil
}

// Render formats the snapshot as a sectioned report. styled enables color
// for interactive terminals.
func Render(snap *Snapshot, styled bool) string {
	var b strings.Builder

	title := fmt.Sprintf("cluster status (namespace %s)", snap.Namespace)
	if styled {
		title = ui.TitleStyle.Render(title)
	}
	fmt.Fprintf(&b, "  %s\n\n", title)

	section(&b, "Nodes", styled)
	if len(snap.Nodes) == 0 {
		dim(&b, "no nodes found", styled)
	}
	for _, node := range snap.Nodes {
		state := rowFailed
		if node.Ready {
			state = rowReady
		}
		row(&b, state, node.Name, node.Version, styled)
	}
	b.WriteString("\n")

	section(&b, "Pods", styled)
	if len(snap.Pods) == 0 {
		dim(&b, "no pods found", styled)
	}
	for _, pod := range snap.Pods {
		extra := fmt.Sprintf("%s %s", pod.Ready, pod.Phase)
		if pod.Restarts > 0 {
			extra += fmt.Sprintf(" (%d restarts)", pod.Restarts)
		}
		row(&b, phaseState(pod.Phase, string(corev1.PodRunning), string(corev1.PodPending)), pod.Name, extra, styled)
	}
	b.WriteString("\n")

	section(&b, "Services", styled)
	if len(snap.Services) == 0 {
		dim(&b, "no services found", styled)
	}
	for _, svc := range snap.Services {
		row(&b, rowReady, svc.Name, fmt.Sprintf("%s %s %s", svc.Type, svc.ClusterIP, svc.Ports), styled)
	}
	b.WriteString("\n")

	section(&b, "Volume claims", styled)
	if len(snap.Claims) == 0 {
		dim(&b, "no volume claims found", styled)
	}
	for _, claim := range snap.Claims {
		extra := claim.Phase
		if claim.Capacity != "" {
			extra += " " + claim.Capacity
		}
		row(&b, phaseState(claim.Phase, string(corev1.ClaimBound), string(corev1.ClaimPending)), claim.Name, extra, styled)
	}

	return b.String()
}

// rowState classifies a report row for mark and color selection.
type rowState int

const (
	rowReady rowState = iota
	rowWarn
	rowFailed
)

// phaseState maps an object phase onto a row state: the healthy phase is
// ready, the in-progress phase is a warning, anything else is failed.
func phaseState(phase, healthy, progressing string) rowState {
	switch phase {
	case healthy:
		return rowReady
	case progressing:
		return rowWarn
	default:
		return rowFailed
	}
}

func section(b *strings.Builder, name string, styled bool) {
	if styled {
		name = ui.SectionStyle.Render(name)
	}
	fmt.Fprintf(b, "  %s\n  %s\n", name, strings.Repeat("─", 35))
}

func row(b *strings.Builder, state rowState, name, extra string, styled bool) {
	mark := ui.CheckMark
	style := ui.ReadyStyle
	switch state {
	case rowWarn:
		mark, style = ui.WarnMark, ui.WarnStyle
	case rowFailed:
		mark, style = ui.CrossMark, ui.FailedStyle
	}
	if styled {
		mark = style.Render(mark)
	}
	if extra != "" {
		fmt.Fprintf(b, "  %s  %-28s %s\n", mark, name, extra)
	} else {
		fmt.Fprintf(b, "  %s  %s\n", mark, name)
	}
}

func dim(b *strings.Builder, msg string, styled bool) {
	if styled {
		msg = ui.DimStyle.Render(msg)
	}
	fmt.Fprintf(b, "  %s\n", msg)
}
