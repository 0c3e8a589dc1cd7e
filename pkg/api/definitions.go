package api

// KeyValue is one Name/Value pair of a container environment.
// The emitted order is deterministic but not semantically meaningful.
type KeyValue struct {
	Name  string
	Value string
}

// Secret references a value injected from a secret store.
type Secret struct {
	Name      string
	ValueFrom string
}

// LogConfiguration is the awslogs configuration of a container.
type LogConfiguration struct {
	LogDriver string
	Options   map[string]string
}

// ContainerDefinition is the computed shape of one container before the
// container-level override is merged on top of it.
// Field names are the bit-exact contract with the template compiler.
type ContainerDefinition struct {
	Name              string
	Image             string
	Cpu               int   `mapstructure:",omitempty"`
	MemoryReservation int   `mapstructure:",omitempty"`
	Essential         *bool `mapstructure:",omitempty"`
	Environment       []KeyValue
	Secrets           []Secret          `mapstructure:",omitempty"`
	LogConfiguration  *LogConfiguration `mapstructure:",omitempty"`
	Command           []string          `mapstructure:",omitempty"`
}

// TaskDefinition is the computed shape of one task definition before the
// task-level override is merged on top of it.
type TaskDefinition struct {
	ContainerDefinitions    []map[string]interface{}
	Family                  string
	NetworkMode             string
	ExecutionRoleArn        string
	TaskRoleArn             string
	RequiresCompatibilities []string
	Memory                  string
	Cpu                     int
}
