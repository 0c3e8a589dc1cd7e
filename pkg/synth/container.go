package synth

import (
	"fmt"
	"sort"

	"flotilla/pkg/api"
	"flotilla/pkg/util/maps"

	"github.com/pkg/errors"
)

const (
	logDriver    = "awslogs"
	streamPrefix = "fargate"
)

// buildContainer assembles the primary container definition for one task.
// The container-level override is merged last, the override value wins on
// every key, including computed ones like Name and Image.
func buildContainer(cfg api.RootConfig, id string, task api.TaskSpec, img string) (map[string]interface{}, error) {
	name := task.Name
	if name == "" {
		name = fmt.Sprintf("%s-%s-%s", cfg.Service, cfg.Stage, id)
	}

	def := api.ContainerDefinition{
		Name:        name,
		Image:       img,
		Environment: environment(cfg, task),
		LogConfiguration: &api.LogConfiguration{
			LogDriver: logDriver,
			Options: map[string]string{
				"awslogs-region":        cfg.Region,
				"awslogs-group":         logGroupName(cfg),
				"awslogs-stream-prefix": streamPrefix,
			},
		},
		Command: task.Command,
	}

	m, err := maps.Apply(def, task.Override.Container)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot apply container override for task %s", id)
	}
	return m, nil
}

// environment merges the global environment with the task's own, the task
// value wins on conflict. A task that declares no environment section gets an
// empty environment, the global one is not inherited implicitly.
func environment(cfg api.RootConfig, task api.TaskSpec) []api.KeyValue {
	env := []api.KeyValue{}
	if task.Environment == nil {
		return env
	}
	merged := make(map[string]string, len(cfg.Environment)+len(task.Environment))
	for k, v := range cfg.Environment {
		merged[k] = v
	}
	for k, v := range task.Environment {
		merged[k] = v
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, api.KeyValue{Name: k, Value: merged[k]})
	}
	return env
}
