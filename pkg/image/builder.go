package image

import (
	"flotilla/pkg/util/context"
)

// Builder builds an image from a local build context and pushes it to a
// registry, returning the pushed image's URI. Implementations own their own
// timeout and retry policy.
type Builder interface {
	BuildAndResolve(ctx context.Context, name, path, file string, buildArgs map[string]string, cacheFrom []string, platform string, scanOnPush bool) (string, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, name, path, file string, buildArgs map[string]string, cacheFrom []string, platform string, scanOnPush bool) (string, error)

// BuildAndResolve calls f.
func (f BuilderFunc) BuildAndResolve(ctx context.Context, name, path, file string, buildArgs map[string]string, cacheFrom []string, platform string, scanOnPush bool) (string, error) {
	return f(ctx, name, path, file, buildArgs, cacheFrom, platform, scanOnPush)
}
