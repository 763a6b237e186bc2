package exec

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/changegate/internal/clock"
	"github.com/viant/changegate/model/verification"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/scy/cred/secret"
	"golang.org/x/crypto/ssh"
)

var errNoCommands = errors.New("exec: no verification commands configured")

// Service executes verification commands through a shell session on a local
// or remote host. It implements runner.Service for the spec it was created
// with, and exposes a generic action method for transports that carry the
// command specification in the request.
type Service struct {
	spec     *Input
	sessions map[string]*sessionInfo
	mux      sync.Mutex
}

type sessionInfo struct {
	service *gosh.Service
}

// New creates a new Service bound to the supplied verification spec.
func New(spec *Input) *Service {
	if spec == nil {
		spec = &Input{}
	}
	return &Service{
		spec:     spec,
		sessions: make(map[string]*sessionInfo),
	}
}

// Run executes the configured verification commands and interprets the last
// exit status: zero is a pass, anything else a fail.
func (s *Service) Run(ctx context.Context) (*verification.Result, error) {
	output := &Output{}
	if err := s.Execute(ctx, s.spec, output); err != nil {
		return nil, err
	}
	return output.Result, nil
}

// Execute executes verification commands on the target system.
func (s *Service) Execute(ctx context.Context, input *Input, output *Output) error {
	input.Init()
	if err := input.Validate(); err != nil {
		return err
	}

	session, err := s.getSession(ctx, input.Host, input.Env)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if input.Workdir != "" {
		if _, _, err := session.service.Run(ctx, fmt.Sprintf("cd %s", input.Workdir)); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
	}

	timeoutDuration := time.Duration(input.TimeoutMs) * time.Millisecond
	if timeoutDuration == 0 {
		timeoutDuration = time.Minute
	}

	started := clock.Now()
	commands := make([]*Command, 0, len(input.Commands))
	var combinedStdout, combinedStderr strings.Builder
	var lastExitCode int

	for _, cmd := range input.Commands {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		command := &Command{Input: cmd}
		stdout, stderr, exitCode := s.executeCommand(ctx, session, cmd, timeoutDuration)
		command.Output = stdout
		command.Stderr = stderr
		command.Status = exitCode
		commands = append(commands, command)

		if stdout != "" {
			combinedStdout.WriteString(stdout)
			combinedStdout.WriteString("\n")
		}
		if stderr != "" {
			combinedStderr.WriteString(stderr)
			combinedStderr.WriteString("\n")
		}

		lastExitCode = exitCode

		// The first failing command fails the attempt.
		if exitCode != 0 {
			break
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	output.Commands = commands
	output.Result = &verification.Result{
		Status:    verification.StatusOf(lastExitCode),
		Output:    strings.TrimSpace(combinedStdout.String()),
		Stderr:    strings.TrimSpace(combinedStderr.String()),
		ExitCode:  lastExitCode,
		StartedAt: started,
		Duration:  clock.Now().Sub(started),
	}
	return nil
}

// executeCommand runs a single command and returns its output
func (s *Service) executeCommand(ctx context.Context, session *sessionInfo, command string, duration time.Duration) (string, string, int) {
	started := time.Now()
	stdout, status, err := session.service.Run(ctx, command, runner.WithTimeout(int(duration.Milliseconds())))
	elapsed := time.Now().Sub(started)
	if elapsed > duration && err == nil {
		err = fmt.Errorf("command %v timed out after: %s", command, elapsed)
	}

	if status == 0 && err == nil {
		return stdout, "", status
	}
	if status == 0 {
		status = 1
	}
	if stdout == "" && err != nil {
		stdout = err.Error()
	}
	return "", stdout, status
}

// getSession retrieves an existing session or creates a new one
func (s *Service) getSession(ctx context.Context, host *Host, env map[string]string) (*sessionInfo, error) {
	sessionID := host.URL

	s.mux.Lock()
	defer s.mux.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}

	envOptions := []runner.Option{}
	if len(env) > 0 {
		envOptions = append(envOptions, runner.WithEnvironment(env))
	}

	var service *gosh.Service
	var err error
	if url.Host(host.URL) == "localhost" {
		service, err = gosh.New(ctx, local.New(envOptions...))
	} else {
		config, cfgErr := s.getSSHConfig(ctx, host)
		if cfgErr != nil {
			return nil, fmt.Errorf("failed to get SSH config: %w", cfgErr)
		}

		sshHost := url.Host(host.URL)
		if !strings.Contains(sshHost, ":") {
			sshHost += ":22"
		}

		service, err = gosh.New(ctx, rssh.New(sshHost, config, envOptions...))
	}
	if err != nil {
		return nil, err
	}
	session := &sessionInfo{service: service}
	s.sessions[sessionID] = session
	return session, nil
}

// getSSHConfig creates an SSH config from the host's credential resource.
func (s *Service) getSSHConfig(ctx context.Context, host *Host) (*ssh.ClientConfig, error) {
	credentials := host.Credentials
	if credentials == "" {
		credentials = "localhost"
	}
	secrets := secret.New()
	generic, err := secrets.GetCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return generic.SSH.Config(ctx)
}

// Close releases all sessions held by this service
func (s *Service) Close(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	var errs []string
	for id, session := range s.sessions {
		if err := session.service.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("failed to close session %s: %v", id, err))
		}
	}
	s.sessions = make(map[string]*sessionInfo)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sessions: %s", strings.Join(errs, "; "))
	}
	return nil
}
