package synth

import (
	"testing"

	"flotilla/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectSidecar(t *testing.T) {
	primary := map[string]interface{}{"Name": "acme-dev-worker"}

	t.Run("monitoring not configured", func(t *testing.T) {
		defs, err := injectSidecar([]map[string]interface{}{primary}, testConfig(), "acme-dev-worker")
		require.NoError(t, err)
		assert.Equal(t, 1, len(defs))
	})

	t.Run("missing credential is fatal", func(t *testing.T) {
		cfg := testConfig()
		cfg.Datadog = &api.DatadogSpec{}
		_, err := injectSidecar([]map[string]interface{}{primary}, cfg, "acme-dev-worker")
		require.Error(t, err)
		assert.True(t, api.IsMissingField(err))
		assert.Contains(t, err.Error(), "datadog.apiKey")
	})

	t.Run("agent appended with defaults", func(t *testing.T) {
		cfg := testConfig()
		cfg.Datadog = &api.DatadogSpec{ApiKey: "arn:aws:secretsmanager:key"}
		defs, err := injectSidecar([]map[string]interface{}{primary}, cfg, "acme-dev-worker")
		require.NoError(t, err)
		require.Equal(t, 2, len(defs))

		agent := defs[1]
		assert.Equal(t, "acme-dev-worker-datadog-agent", agent["Name"])
		assert.Equal(t, "datadog/agent:latest", agent["Image"])
		assert.Equal(t, 10, agent["Cpu"])
		assert.Equal(t, 256, agent["MemoryReservation"])
		assert.False(t, *agent["Essential"].(*bool))
		assert.Equal(t, []api.KeyValue{
			{Name: "ECS_FARGATE", Value: "true"},
			{Name: "DD_APM_NON_LOCAL_TRAFFIC", Value: "false"},
		}, agent["Environment"])
		assert.Equal(t, []api.Secret{
			{Name: "DD_API_KEY", ValueFrom: "arn:aws:secretsmanager:key"},
		}, agent["Secrets"])
	})

	t.Run("operator overrides", func(t *testing.T) {
		essential := true
		cpu := 32
		memRes := 512
		cfg := testConfig()
		cfg.Datadog = &api.DatadogSpec{
			ApiKey:            "arn:aws:secretsmanager:key",
			NonLocalTraffic:   true,
			Essential:         &essential,
			Cpu:               &cpu,
			MemoryReservation: &memRes,
		}
		defs, err := injectSidecar([]map[string]interface{}{primary}, cfg, "acme-dev-worker")
		require.NoError(t, err)
		agent := defs[1]
		assert.True(t, *agent["Essential"].(*bool))
		assert.Equal(t, 32, agent["Cpu"])
		assert.Equal(t, 512, agent["MemoryReservation"])
		assert.Contains(t, agent["Environment"], api.KeyValue{Name: "DD_APM_NON_LOCAL_TRAFFIC", Value: "true"})
	})
}
