package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"

	"github.com/bernhq/meshkube/internal/config"
	"github.com/bernhq/meshkube/internal/execx"
	"github.com/bernhq/meshkube/internal/kubectl"
	"github.com/bernhq/meshkube/internal/storage"
)

// Outcome classifies one apply step.
type Outcome string

const (
	// OutcomeCreated means the object was absent and has been applied.
	OutcomeCreated Outcome = "created"
	// OutcomeExists means the object was already present and was left
	// untouched. Changed fields are NOT reconciled; delete the object to
	// force an update.
	OutcomeExists Outcome = "exists"
	// OutcomeFailed means the apply ran and failed.
	OutcomeFailed Outcome = "failed"
)

// StepResult records one object's apply outcome.
type StepResult struct {
	Kind    string
	Name    string
	Outcome Outcome
	Err     error
}

// Applier creates missing cluster objects in dependency order.
type Applier struct {
	runner execx.Runner
	log    *logrus.Logger
}

// NewApplier wires an Applier.
func NewApplier(runner execx.Runner, log *logrus.Logger) *Applier {
	return &Applier{runner: runner, log: log}
}

// ApplyAll walks the fixed order namespace → storage → workloads → service,
// creating whatever is absent. Re-running with no intervening state change
// is a no-op. The returned error aggregates failed steps; earlier outcomes
// are still reported.
func (a *Applier) ApplyAll(ctx context.Context, cfg *config.Config) ([]StepResult, error) {
	steps := []struct {
		kind   string // kubectl resource kind for the existence probe
		name   string
		scoped bool // namespace-scoped
		obj    interface{}
	}{
		{"namespace", cfg.Namespace, false, Namespace(cfg.Namespace)},
		{"storageclass", storage.ClassName, false, storage.Class()},
		{"persistentvolume", storage.VolumeName, false, storage.Volume(cfg.NASIP, cfg.NASPath)},
		{"persistentvolumeclaim", storage.ClaimName, true, storage.Claim(cfg.Namespace)},
		{"deployment", CoordinatorName, true, Coordinator(cfg.Namespace)},
		{"deployment", WorkerName, true, Workers(cfg.Namespace, cfg.WorkerReplicas)},
		{"service", ServiceName, true, Service(cfg.Namespace)},
	}

	var results []StepResult
	var errs []error

	for _, step := range steps {
		namespace := ""
		if step.scoped {
			namespace = cfg.Namespace
		}

		result := StepResult{Kind: step.kind, Name: step.name}

		if kubectl.Exists(ctx, a.runner, step.kind, step.name, namespace) {
			result.Outcome = OutcomeExists
			a.log.Debugf("%s/%s already exists", step.kind, step.name)
			results = append(results, result)
			continue
		}

		manifest, err := yaml.Marshal(step.obj)
		if err != nil {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("failed to marshal %s/%s: %w", step.kind, step.name, err)
			errs = append(errs, result.Err)
			results = append(results, result)
			continue
		}

		if err := kubectl.Apply(ctx, a.runner, step.name, manifest); err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			errs = append(errs, err)
			a.log.Warnf("apply %s/%s failed: %v", step.kind, step.name, err)
		} else {
			result.Outcome = OutcomeCreated
			a.log.Infof("%s/%s created", step.kind, step.name)
		}
		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

// Teardown deletes the namespace, cascading to every namespaced object.
// Cluster-scoped storage objects are removed explicitly.
func (a *Applier) Teardown(ctx context.Context, cfg *config.Config) error {
	var errs []error
	if err := kubectl.Delete(ctx, a.runner, "namespace", cfg.Namespace, ""); err != nil {
		errs = append(errs, err)
	}
	if err := kubectl.Delete(ctx, a.runner, "persistentvolume", storage.VolumeName, ""); err != nil {
		errs = append(errs, err)
	}
	if err := kubectl.Delete(ctx, a.runner, "storageclass", storage.ClassName, ""); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
