package synth

import (
	"strconv"

	"flotilla/pkg/api"
	"flotilla/pkg/util/maps"

	"github.com/pkg/errors"
)

const (
	datadogImage  = "datadog/agent:latest"
	datadogSuffix = "-datadog-agent"
)

// Operator-overridable agent defaults.
const (
	defaultAgentCpu               = 10
	defaultAgentMemoryReservation = 256
)

// injectSidecar appends the datadog agent container when monitoring is enabled.
// Monitoring without a credential is fatal for the whole run, the sidecar is a
// cross-cutting concern shared by all tasks.
func injectSidecar(defs []map[string]interface{}, cfg api.RootConfig, primaryName string) ([]map[string]interface{}, error) {
	dd := cfg.Datadog
	if dd == nil {
		return defs, nil
	}
	if dd.ApiKey == "" {
		return nil, api.MissingFieldError{Field: "datadog.apiKey"}
	}

	essential := false
	if dd.Essential != nil {
		essential = *dd.Essential
	}
	cpu := defaultAgentCpu
	if dd.Cpu != nil {
		cpu = *dd.Cpu
	}
	memRes := defaultAgentMemoryReservation
	if dd.MemoryReservation != nil {
		memRes = *dd.MemoryReservation
	}

	agent := api.ContainerDefinition{
		Name:              primaryName + datadogSuffix,
		Image:             datadogImage,
		Essential:         &essential,
		Cpu:               cpu,
		MemoryReservation: memRes,
		Environment: []api.KeyValue{
			{Name: "ECS_FARGATE", Value: "true"},
			{Name: "DD_APM_NON_LOCAL_TRAFFIC", Value: strconv.FormatBool(dd.NonLocalTraffic)},
		},
		Secrets: []api.Secret{
			{Name: "DD_API_KEY", ValueFrom: dd.ApiKey},
		},
	}

	m, err := maps.Apply(agent, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build datadog agent definition")
	}
	return append(defs, m), nil
}
