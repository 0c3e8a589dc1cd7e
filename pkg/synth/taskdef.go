package synth

import (
	"flotilla/pkg/api"
	"flotilla/pkg/util/maps"

	"github.com/pkg/errors"
)

const (
	networkMode   = "awsvpc"
	compatibility = "FARGATE"
	defaultMemory = "2.0GB"
	defaultCpu    = 1024
)

// buildTaskDefinition wraps the container definitions into the task-level
// resource. The Family is shared by all tasks of the service, a deliberate
// flat namespace. The task-level override is merged last.
func buildTaskDefinition(cfg api.RootConfig, id string, task api.TaskSpec, containers []map[string]interface{}) (map[string]interface{}, error) {
	role := task.Override.Role
	if role == "" {
		role = cfg.Role
	}
	memory := task.Memory
	if memory == "" {
		memory = defaultMemory
	}
	cpu := task.Cpu
	if cpu == 0 {
		cpu = defaultCpu
	}

	def := api.TaskDefinition{
		ContainerDefinitions:    containers,
		Family:                  familyName(cfg),
		NetworkMode:             networkMode,
		ExecutionRoleArn:        role,
		TaskRoleArn:             role,
		RequiresCompatibilities: []string{compatibility},
		Memory:                  memory,
		Cpu:                     cpu,
	}

	m, err := maps.Apply(def, task.Override.Task)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot apply task override for task %s", id)
	}
	return m, nil
}
