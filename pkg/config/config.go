package config

import (
	"encoding/json"
	"io"
	"os"

	"flotilla/pkg/api"
	"flotilla/pkg/util/maps"
	"flotilla/pkg/util/template"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
)

// sectionKey is the service file section owned by flotilla.
const sectionKey = "fargate"

// defaults are filled from the process environment when the service file
// leaves the corresponding fields unset.
type defaults struct {
	Stage  string `env:"FLOTILLA_STAGE" envDefault:"dev"`
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`
}

// Load reads the service file at the given path and returns the root configuration.
func Load(path string) (api.RootConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return api.RootConfig{}, errors.Wrapf(err, "cannot open file %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a service file from the given reader.
// Variable expressions are resolved against the process environment (env:)
// and the document itself (self:) before decoding.
func Read(in io.Reader) (api.RootConfig, error) {
	var cfg api.RootConfig

	var doc map[string]interface{}
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return cfg, errors.Wrap(err, "cannot decode service file")
	}

	resolved, err := template.New(doc).Resolve(resolver(doc))
	if err != nil {
		return cfg, errors.Wrap(err, "cannot resolve service file variables")
	}

	section := maps.Get(resolved, sectionKey)
	if section == nil {
		return cfg, errors.Errorf("service file has no %s section", sectionKey)
	}
	if err := maps.DecodeWith(section, &cfg, api.ImageDecodeHook()); err != nil {
		return cfg, errors.Wrapf(err, "cannot decode %s section", sectionKey)
	}

	if cfg.Service == "" {
		if s, ok := maps.Get(resolved, "service").(string); ok {
			cfg.Service = s
		}
	}

	var d defaults
	if err := env.Parse(&d); err != nil {
		return cfg, errors.Wrap(err, "cannot parse env defaults")
	}
	if cfg.Stage == "" {
		cfg.Stage = d.Stage
	}
	if cfg.Region == "" {
		cfg.Region = d.Region
	}
	return cfg, nil
}

// resolver resolves ${env:VAR} from the process environment and ${self:path}
// from the document itself.
func resolver(doc map[string]interface{}) template.ResolveFunc {
	return func(expr template.Expression) (interface{}, error) {
		switch expr.Source() {
		case "env":
			v, ok := os.LookupEnv(expr.Path())
			if !ok {
				return nil, errors.Errorf("environment variable %s is not set", expr.Path())
			}
			return v, nil
		case "self":
			v := maps.Get(doc, expr.Path())
			if v == nil {
				return nil, errors.Errorf("cannot resolve %s within the service file", expr)
			}
			return v, nil
		}
		return nil, errors.Errorf("unknown variable source in %s", expr)
	}
}
