package image

import (
	"regexp"

	"flotilla/pkg/api"
	"flotilla/pkg/util/context"

	"github.com/pkg/errors"
)

const defaultDockerfile = "Dockerfile"

// uriRegexp classifies a plain image string as an already pushed registry reference:
// either an ECR repository URI or a digest reference.
var uriRegexp = regexp.MustCompile(`^([0-9]+\.dkr\.ecr\.[a-z0-9-]+\.amazonaws\.com/\S+|\S+@sha256:[0-9a-f]{64})$`)

// IsURI returns true when the given string is a registry URI rather than a bare image name.
func IsURI(s string) bool {
	return uriRegexp.MatchString(s)
}

// Resolver turns a task's image specification into a concrete, pullable reference.
// The catalog is read-only during synthesis so resolutions may run in parallel.
type Resolver struct {
	catalog    map[string]api.ImageEntry
	scanOnPush bool
	builder    Builder
}

// NewResolver returns a new Resolver backed by the provider catalog and the given builder.
func NewResolver(catalog map[string]api.ImageEntry, scanOnPush bool, b Builder) *Resolver {
	return &Resolver{
		catalog:    catalog,
		scanOnPush: scanOnPush,
		builder:    b,
	}
}

// Resolve resolves the given image specification.
// A literal URI is returned verbatim. A bare name is looked up in the catalog:
// a literal catalog entry is returned verbatim, a build descriptor defers to the
// builder, and a miss returns the name unmodified since it is assumed to be a
// public pullable reference.
func (r *Resolver) Resolve(ctx context.Context, spec api.ImageSpec) (string, error) {
	uri, name := normalize(spec)
	if uri != "" {
		return uri, nil
	}

	entry, ok := r.catalog[name]
	if !ok {
		ctx.Logger().Tracef("image %s not found in catalog, pulling by name", name)
		return name, nil
	}
	if entry.URI != "" {
		return entry.URI, nil
	}

	file := entry.File
	if file == "" {
		file = defaultDockerfile
	}
	buildArgs := entry.BuildArgs
	if buildArgs == nil {
		buildArgs = map[string]string{}
	}
	cacheFrom := entry.CacheFrom
	if cacheFrom == nil {
		cacheFrom = []string{}
	}

	ctx.Logger().Infof("building image %s from %s", name, entry.Path)
	built, err := r.builder.BuildAndResolve(ctx, name, entry.Path, file, buildArgs, cacheFrom, entry.Platform, r.scanOnPush)
	if err != nil {
		return "", errors.Wrapf(err, "cannot build image %s", name)
	}
	return built, nil
}

// normalize reduces the specification to (uri, name), uri wins.
func normalize(spec api.ImageSpec) (string, string) {
	if spec.Literal != "" {
		if IsURI(spec.Literal) {
			return spec.Literal, ""
		}
		return "", spec.Literal
	}
	if spec.URI != "" {
		return spec.URI, ""
	}
	return "", spec.Name
}
