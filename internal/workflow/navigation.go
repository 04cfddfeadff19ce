package workflow

//
// Stage navigation and configuration updates.
//

import (
	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
)

// Continue attempts to move to the next stage. When the current stage
// is not correctly configured, it returns a [*stagegate.Violation] and
// the stage does not change. Violations are not notified as toasts.
func (o *Orchestrator) Continue() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	from := o.gate.Current()
	err := o.gate.Next(stagegate.Inputs{Schema: o.schema, Config: o.config})
	if err != nil {
		o.logger.Debugf("workflow: blocked %s -> next: %s", from, err.Error())
		return err
	}
	o.logger.Debugf("workflow: %s -> %s", from, o.gate.Current())
	return nil
}

// Back moves to the previous stage and returns it.
func (o *Orchestrator) Back() stagegate.Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gate.Prev()
}

// GoTo moves to stage n, clamped into the valid range, without checking
// any precondition, and returns the new stage.
func (o *Orchestrator) GoTo(n int) stagegate.Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gate.GoTo(n)
}

// Config returns a copy of the current configuration.
func (o *Orchestrator) Config() model.Configuration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return configmodel.Clone(o.config)
}

// UpdateConfig sets the leaf field addressed by path to value.
func (o *Orchestrator) UpdateConfig(path string, value any) error {
	return o.mutateConfig(func(c model.Configuration) (model.Configuration, error) {
		return configmodel.Update(c, path, value)
	})
}

// ToggleConfig adds or removes member from the set addressed by path.
func (o *Orchestrator) ToggleConfig(path, member string) error {
	return o.mutateConfig(func(c model.Configuration) (model.Configuration, error) {
		return configmodel.Toggle(c, path, member)
	})
}

// AssignConfig applies textual "path=value" assignments in order. On
// failure, the configuration is left unchanged.
func (o *Orchestrator) AssignConfig(assignments ...string) error {
	return o.mutateConfig(func(c model.Configuration) (model.Configuration, error) {
		return configmodel.AssignAll(c, assignments...)
	})
}

// ReplaceConfig replaces the whole configuration.
func (o *Orchestrator) ReplaceConfig(config model.Configuration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.config = configmodel.Clone(config)
}

func (o *Orchestrator) mutateConfig(fx func(c model.Configuration) (model.Configuration, error)) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	next, err := fx(o.config)
	if err != nil {
		return err
	}
	o.config = next
	return nil
}
