package synth

import (
	"fmt"
	"sync"

	"flotilla/pkg/api"
	"flotilla/pkg/graph"
	"flotilla/pkg/image"
	"flotilla/pkg/util/context"
	"flotilla/pkg/util/names"

	"github.com/pkg/errors"
)

// Resource graph keys written once, before any task branch starts.
const (
	clusterKey  = "FargateTasksCluster"
	logGroupKey = "FargateTasksLogGroup"
)

// Synthesizer compiles a root configuration into a resource graph.
type Synthesizer struct {
	builder image.Builder
}

// New returns a new Synthesizer using the given image builder.
func New(b image.Builder) *Synthesizer {
	return &Synthesizer{builder: b}
}

// Synthesize produces the full resource graph for the given configuration.
// The per-task branches run concurrently and write disjoint graph keys. On the
// first fatal error the shared context is cancelled, the remaining branches are
// drained, nothing partial is committed and the error is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, cfg api.RootConfig) (*graph.Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx = context.WithService(ctx, cfg.Service, cfg.Stage)
	ctx.Logger().Infof("synthesizing %d tasks", len(cfg.Tasks))

	g := graph.New()
	if err := g.Put(clusterKey, graph.Resource{
		Type: "AWS::ECS::Cluster",
		Properties: map[string]interface{}{
			"ClusterName":       familyName(cfg),
			"CapacityProviders": []string{"FARGATE"},
		},
	}); err != nil {
		return nil, err
	}
	if err := g.Put(logGroupKey, graph.Resource{
		Type: "AWS::Logs::LogGroup",
		Properties: map[string]interface{}{
			"LogGroupName": logGroupName(cfg),
		},
	}); err != nil {
		return nil, err
	}

	resolver := image.NewResolver(cfg.Images, cfg.ScanOnPush, s.builder)

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, len(cfg.Tasks))
	for id, task := range cfg.Tasks {
		wg.Add(1)
		go func(id string, task api.TaskSpec) {
			defer wg.Done()
			tctx := context.WithTaskID(cctx, id)
			if err := s.synthesizeTask(tctx, cfg, resolver, id, task, g); err != nil {
				tctx.Logger().Error(errors.Wrapf(err, "cannot synthesize task %s", id))
				errs <- err
				cancel()
			}
		}(id, task)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	return g, nil
}

// synthesizeTask runs one independent synthesis branch. A failed branch
// writes nothing into the graph.
func (s *Synthesizer) synthesizeTask(ctx context.Context, cfg api.RootConfig, resolver *image.Resolver, id string, task api.TaskSpec, g *graph.Graph) error {
	if err := task.Validate(id); err != nil {
		return err
	}

	img, err := resolver.Resolve(ctx, task.Image)
	if err != nil {
		return errors.Wrapf(err, "cannot resolve image for task %s", id)
	}
	ctx.Logger().Tracef("image for task %s resolved to %s", id, img)

	container, err := buildContainer(cfg, id, task, img)
	if err != nil {
		return err
	}
	primaryName, _ := container["Name"].(string)

	defs := []map[string]interface{}{container}
	defs, err = injectSidecar(defs, cfg, primaryName)
	if err != nil {
		return err
	}

	def, err := buildTaskDefinition(cfg, id, task, defs)
	if err != nil {
		return err
	}

	return g.Put(names.Alphanumeric(id)+"Task", graph.Resource{
		Type:       "AWS::ECS::TaskDefinition",
		Properties: def,
	})
}

func familyName(cfg api.RootConfig) string {
	return fmt.Sprintf("%s-%s", cfg.Service, cfg.Stage)
}

func logGroupName(cfg api.RootConfig) string {
	return fmt.Sprintf("ecs/%s", familyName(cfg))
}
