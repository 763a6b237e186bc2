package changegate

import (
	"fmt"

	"github.com/viant/changegate/policy"
	csfs "github.com/viant/changegate/service/dao/changeset/fs"
	"github.com/viant/changegate/service/runner/exec"
)

// Config is a serialisable representation of the gate configuration. It can
// be populated from JSON, YAML, environment-variable expansion, etc. The
// zero-value is useful – all nested fields inherit their package defaults.
type Config struct {
	Policy       *policy.Config     `json:"policy,omitempty" yaml:"policy,omitempty"`
	Verification VerificationConfig `json:"verification" yaml:"verification"`
	Store        StoreConfig        `json:"store,omitempty" yaml:"store,omitempty"`
}

// VerificationConfig describes the command suite verifying a change set.
type VerificationConfig struct {
	// URL selects the execution host, e.g. bash://localhost/ or ssh://build-01.
	URL         string            `json:"url,omitempty" yaml:"url,omitempty"`
	Credentials string            `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	Workdir     string            `json:"workdir,omitempty" yaml:"workdir,omitempty"`
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Commands    []string          `json:"commands,omitempty" yaml:"commands,omitempty"`
	TimeoutMs   int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
}

// StoreConfig selects where change sets are persisted. An empty BaseURL
// keeps them in memory.
type StoreConfig struct {
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// DefaultConfig returns a Config mirroring the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Verification: VerificationConfig{
			URL: "bash://localhost/",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Verification.TimeoutMs < 0 {
		return fmt.Errorf("verification.timeoutMs must be >= 0")
	}
	return nil
}

// NewFromConfig builds a service from a serialisable configuration; explicit
// options take precedence over configured values.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	var configured []Option
	if config != nil {
		if config.Policy != nil {
			configured = append(configured, WithPolicy(policy.FromConfig(config.Policy)))
		}
		if len(config.Verification.Commands) > 0 {
			configured = append(configured, WithVerification(&exec.Input{
				Host:      &exec.Host{URL: config.Verification.URL, Credentials: config.Verification.Credentials},
				Workdir:   config.Verification.Workdir,
				Env:       config.Verification.Env,
				Commands:  config.Verification.Commands,
				TimeoutMs: config.Verification.TimeoutMs,
			}))
		}
		if config.Store.BaseURL != "" {
			store, err := csfs.New(config.Store.BaseURL)
			if err != nil {
				return nil, err
			}
			configured = append(configured, WithChangeSetDAO(store))
		}
	}
	return New(append(configured, options...)...), nil
}
