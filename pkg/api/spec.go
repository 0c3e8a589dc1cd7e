package api

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// RootConfig is the parsed fargate section of the service file.
// It is read once per synthesis run and immutable afterwards.
type RootConfig struct {
	// Service and Stage drive every derived resource name (<service>-<stage>).
	Service string
	Stage   string
	Region  string

	// Role is the IAM role used for both the execution and task role slots, required.
	Role string

	// Tasks maps task identifiers to their specifications, required.
	Tasks map[string]TaskSpec

	// Environment is merged into every task that declares its own environment section.
	Environment map[string]string

	// Datadog enables the monitoring agent sidecar when present.
	Datadog *DatadogSpec

	// Images is the provider-level image catalog consulted during name resolution.
	Images map[string]ImageEntry

	// ScanOnPush is forwarded to the image builder when a catalog entry requires a build.
	ScanOnPush bool
}

// TaskSpec is the declarative specification of one task.
type TaskSpec struct {
	// Name is the explicit container name, defaults to <service>-<stage>-<identifier>.
	Name        string
	Image       ImageSpec
	Command     []string
	Environment map[string]string
	Memory      string
	Cpu         int
	Override    OverrideSpec
}

// ImageSpec is a task's image declaration, either a plain string or a structured value.
// Exactly one resolution strategy applies: literal URI, bare name, or catalog build.
type ImageSpec struct {
	// Literal is set when the user supplied a plain string, classified later as URI or name.
	Literal string

	URI  string
	Name string

	// Build-related fields, only meaningful through the provider catalog.
	Path      string
	File      string
	BuildArgs map[string]string
	CacheFrom []string
	Platform  string
}

// Empty returns true when no resolution strategy can apply.
func (s ImageSpec) Empty() bool {
	return s.Literal == "" && s.URI == "" && s.Name == ""
}

// ImageEntry is one provider catalog entry, either a literal registry URI or a build descriptor.
type ImageEntry struct {
	// URI is set when the catalog entry is a plain string, returned verbatim.
	URI string

	Path      string
	File      string
	BuildArgs map[string]string
	CacheFrom []string
	Platform  string
}

// OverrideSpec carries the operator escape hatches merged last into the
// computed definitions, the override value wins on key conflict.
type OverrideSpec struct {
	Container map[string]interface{}
	Task      map[string]interface{}

	// Role supersedes the root-level role for this task only.
	Role string
}

// DatadogSpec configures the monitoring agent sidecar.
type DatadogSpec struct {
	// ApiKey is the secret reference carrying the agent credential, required.
	ApiKey string

	// NonLocalTraffic opens the agent's APM network listener to the other containers.
	NonLocalTraffic bool

	Essential         *bool
	Cpu               *int
	MemoryReservation *int
}

// ImageDecodeHook converts bare string image declarations into their structured forms.
func ImageDecodeHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		switch to {
		case reflect.TypeOf(ImageSpec{}):
			return ImageSpec{Literal: data.(string)}, nil
		case reflect.TypeOf(ImageEntry{}):
			return ImageEntry{URI: data.(string)}, nil
		}
		return data, nil
	}
}
