package graph

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut(t *testing.T) {
	g := New()
	err := g.Put("FargateTasksCluster", Resource{Type: "AWS::ECS::Cluster"})
	require.NoError(t, err)

	// Duplicate name
	err = g.Put("FargateTasksCluster", Resource{Type: "AWS::ECS::Cluster"})
	require.Error(t, err)

	r, ok := g.Get("FargateTasksCluster")
	require.True(t, ok)
	assert.Equal(t, "AWS::ECS::Cluster", r.Type)

	_, ok = g.Get("missing")
	assert.False(t, ok)
}

func TestConcurrentPut(t *testing.T) {
	// Disjoint keys written from concurrent branches
	g := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, g.Put(fmt.Sprintf("task%d", i), Resource{Type: "AWS::ECS::TaskDefinition"}))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, g.Len())
}

func TestMarshalJSON(t *testing.T) {
	g := New()
	require.NoError(t, g.Put("FargateTasksLogGroup", Resource{
		Type:       "AWS::Logs::LogGroup",
		Properties: map[string]interface{}{"LogGroupName": "ecs/acme-dev"},
	}))

	out, err := json.Marshal(g)
	require.NoError(t, err)

	var doc map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &doc))
	res, ok := doc["Resources"]["FargateTasksLogGroup"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "AWS::Logs::LogGroup", res["Type"])
}
