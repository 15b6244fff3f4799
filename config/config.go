// Package config loads service configuration from environment variables.
// Variables may be placed into .env file, it is loaded before reading of environment.
package config

import (
	"os"

	"github.com/zoobr/csxhasura/clients/hasura"
	"github.com/zoobr/csxhasura/logger"

	"github.com/joho/godotenv"
	pkgerrs "github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is a service config
type Config struct {
	LoggerMode string
	HTTPAddr   string
	Hasura     hasura.Config
	Metrics    MetricsConfig
	Tracer     TracerConfig
}

// MetricsConfig is a config of Prometheus metrics
type MetricsConfig struct {
	Namespace string
	Subsystem string
}

// TracerConfig is a config of Jaeger tracer. Tracing is disabled if JaegerURL is empty
type TracerConfig struct {
	JaegerURL        string
	ServiceNamespace string
	ServiceName      string
}

// environment variables by config keys
var envKeys = map[string]string{
	"logger.mode":              "LOGGER_MODE",
	"http.addr":                "HTTP_ADDR",
	"hasura.endpoint":          "HASURA_GRAPHQL_ENDPOINT",
	"hasura.admin_secret":      "HASURA_GRAPHQL_ADMIN_SECRET",
	"metrics.namespace":        "METRICS_NAMESPACE",
	"metrics.subsystem":        "METRICS_SUBSYSTEM",
	"tracer.jaeger_url":        "JAEGER_URL",
	"tracer.service_namespace": "SERVICE_NAMESPACE",
	"tracer.service_name":      "SERVICE_NAME",
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("logger.mode", logger.LoggerModeDev)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.namespace", "csx")
	v.SetDefault("metrics.subsystem", "hasura_gateway")
	v.SetDefault("tracer.service_namespace", "csx")
	v.SetDefault("tracer.service_name", "hasura-gateway")

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, pkgerrs.Wrapf(err, "can't bind %s", env)
		}
	}
	return v, nil
}

// Load loads config from environment. If envFile is not empty and exists, it is loaded first.
// Variables which are already set in environment are not overridden by envFile.
func Load(envFile string) (*Config, error) {
	if len(envFile) != 0 {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, pkgerrs.Wrapf(err, "can't load %s", envFile)
		}
	}

	v, err := newViper()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LoggerMode: v.GetString("logger.mode"),
		HTTPAddr:   v.GetString("http.addr"),
		Hasura: hasura.Config{
			GraphQLEndpoint: v.GetString("hasura.endpoint"),
			AdminSecret:     v.GetString("hasura.admin_secret"),
		},
		Metrics: MetricsConfig{
			Namespace: v.GetString("metrics.namespace"),
			Subsystem: v.GetString("metrics.subsystem"),
		},
		Tracer: TracerConfig{
			JaegerURL:        v.GetString("tracer.jaeger_url"),
			ServiceNamespace: v.GetString("tracer.service_namespace"),
			ServiceName:      v.GetString("tracer.service_name"),
		},
	}
	if len(cfg.Hasura.GraphQLEndpoint) == 0 {
		return nil, pkgerrs.Wrap(hasura.ErrMissingEndpoint, "HASURA_GRAPHQL_ENDPOINT")
	}

	return cfg, nil
}
