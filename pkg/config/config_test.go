package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	os.Unsetenv("FLOTILLA_STAGE")
	os.Unsetenv("AWS_REGION")
	cfg, err := Load("testdata/serverless.json")
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.Service)
	assert.Equal(t, "arn:aws:iam::1:role/x", cfg.Role)
	assert.Equal(t, 2, len(cfg.Tasks))
	assert.Equal(t, "nginx", cfg.Tasks["worker"].Image.Literal)
	assert.Equal(t, "4", cfg.Tasks["worker"].Environment["WORKERS"])
	assert.Equal(t, "app", cfg.Tasks["app"].Image.Name)
	assert.Equal(t, "4GB", cfg.Tasks["app"].Memory)
	assert.Equal(t, 2048, cfg.Tasks["app"].Cpu)
	assert.Equal(t, "./app", cfg.Images["app"].Path)
	assert.Equal(t, "Dockerfile.prod", cfg.Images["app"].File)

	// Env defaults fill unset fields
	assert.Equal(t, "dev", cfg.Stage)
	assert.Equal(t, "us-east-1", cfg.Region)

	// Missing file
	_, err = Load("testdata/missing.json")
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	os.Setenv("ACME_ROLE", "arn:aws:iam::1:role/from-env")
	in := `{
		"service": "acme",
		"fargate": {
			"stage": "prod",
			"role": "${env:ACME_ROLE}",
			"tasks": {
				"worker": {"image": "${self:fargate.stage}-worker"}
			}
		}
	}`
	cfg, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Stage)
	assert.Equal(t, "arn:aws:iam::1:role/from-env", cfg.Role)
	assert.Equal(t, "prod-worker", cfg.Tasks["worker"].Image.Literal)

	// Unset variable
	_, err = Read(strings.NewReader(`{"fargate": {"role": "${env:FLOTILLA_NO_SUCH_VAR}"}}`))
	require.Error(t, err)

	// Missing fargate section
	_, err = Read(strings.NewReader(`{"service": "acme"}`))
	require.Error(t, err)

	// Not valid json
	_, err = Read(strings.NewReader(`{"service": "acm`))
	require.Error(t, err)
}
