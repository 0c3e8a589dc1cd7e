package image

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"flotilla/pkg/util/context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ecrBuilder builds images with the local docker daemon and pushes them to ECR.
type ecrBuilder struct {
	docker *client.Client
	ecr    *ecr.Client
}

// NewECRBuilder returns a Builder backed by the local docker daemon and the
// ECR registry of the ambient AWS credentials.
func NewECRBuilder(ctx context.Context) (Builder, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.Wrap(err, "cannot create docker client")
	}
	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load aws configuration")
	}
	return &ecrBuilder{
		docker: cli,
		ecr:    ecr.NewFromConfig(awscfg),
	}, nil
}

func (b *ecrBuilder) BuildAndResolve(ctx context.Context, name, path, file string, buildArgs map[string]string, cacheFrom []string, platform string, scanOnPush bool) (string, error) {
	repoURI, err := b.ensureRepository(ctx, name, scanOnPush)
	if err != nil {
		return "", err
	}

	// Unique tag per build so every synthesis run pins its own pushed image.
	ref := fmt.Sprintf("%s:%s", repoURI, uuid.New().String()[:8])

	buildCtx, err := archive.TarWithOptions(path, &archive.TarOptions{})
	if err != nil {
		return "", errors.Wrapf(err, "cannot create build context from %s", path)
	}
	defer buildCtx.Close()

	args := make(map[string]*string, len(buildArgs))
	for k, v := range buildArgs {
		v := v
		args[k] = &v
	}
	ctx.Logger().Tracef("building %s from %s with dockerfile %s", ref, path, file)
	resp, err := b.docker.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       []string{ref},
		Dockerfile: file,
		BuildArgs:  args,
		CacheFrom:  cacheFrom,
		Platform:   platform,
		Remove:     true,
	})
	if err != nil {
		return "", errors.Wrapf(err, "cannot build image %s", ref)
	}
	if err := drain(resp.Body); err != nil {
		return "", errors.Wrapf(err, "error during build of image %s", ref)
	}

	auth, err := b.registryAuth(ctx)
	if err != nil {
		return "", err
	}
	ctx.Logger().Tracef("pushing %s", ref)
	push, err := b.docker.ImagePush(ctx, ref, types.ImagePushOptions{RegistryAuth: auth})
	if err != nil {
		return "", errors.Wrapf(err, "cannot push image %s", ref)
	}
	if err := drain(push); err != nil {
		return "", errors.Wrapf(err, "error during push of image %s", ref)
	}
	return ref, nil
}

// ensureRepository returns the repository URI for the given name, creating the
// repository with the scan-on-push flag when it does not exist yet.
func (b *ecrBuilder) ensureRepository(ctx context.Context, name string, scanOnPush bool) (string, error) {
	out, err := b.ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err == nil {
		return aws.ToString(out.Repositories[0].RepositoryUri), nil
	}
	var notFound *ecrtypes.RepositoryNotFoundException
	if !errors.As(err, &notFound) {
		return "", errors.Wrapf(err, "cannot describe repository %s", name)
	}

	ctx.Logger().Infof("creating repository %s", name)
	created, err := b.ecr.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(name),
		ImageScanningConfiguration: &ecrtypes.ImageScanningConfiguration{
			ScanOnPush: scanOnPush,
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "cannot create repository %s", name)
	}
	return aws.ToString(created.Repository.RepositoryUri), nil
}

// registryAuth returns the docker RegistryAuth header for the ECR registry.
func (b *ecrBuilder) registryAuth(ctx context.Context) (string, error) {
	out, err := b.ecr.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return "", errors.Wrap(err, "cannot get ecr authorization token")
	}
	if len(out.AuthorizationData) == 0 {
		return "", errors.New("empty ecr authorization data")
	}
	data := out.AuthorizationData[0]
	decoded, err := base64.StdEncoding.DecodeString(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return "", errors.Wrap(err, "cannot decode ecr authorization token")
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", errors.New("malformed ecr authorization token")
	}
	buf, err := json.Marshal(registry.AuthConfig{
		Username:      parts[0],
		Password:      parts[1],
		ServerAddress: aws.ToString(data.ProxyEndpoint),
	})
	if err != nil {
		return "", errors.Wrap(err, "cannot encode registry auth")
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

// drain consumes the daemon's streamed response. The daemon answers 200 and
// reports build or push failures as an error message inside the stream, so
// every message must be decoded and checked.
func drain(r io.ReadCloser) error {
	defer r.Close()
	dec := json.NewDecoder(r)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if msg.Error != nil {
			return msg.Error
		}
	}
}
