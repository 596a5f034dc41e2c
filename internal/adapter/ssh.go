package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	"multihost/internal/domain"
)

// CommandResult holds the outcome of one remote command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// SSHConfig holds transport-wide defaults. Per-host username and password
// from the inventory take precedence.
type SSHConfig struct {
	// User is the login used when the host entry does not set one.
	User string
	// Password is the fallback password authentication credential.
	Password string
	// PrivateKey is an optional PEM-encoded private key.
	PrivateKey []byte
	// Port is the SSH port, 22 when zero.
	Port int
	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration
}

// DefaultSSHConfig returns sensible defaults.
func DefaultSSHConfig() SSHConfig {
	return SSHConfig{
		User:           "root",
		Port:           22,
		ConnectTimeout: 10 * time.Second,
	}
}

// SSHTransport executes commands on inventory hosts over SSH. One transport
// is shared by all invocations of a run; connections are established per
// command so that role objects never hold host state between invocations.
type SSHTransport struct {
	config SSHConfig
}

// NewSSHTransport creates a transport with the given defaults.
func NewSSHTransport(config SSHConfig) *SSHTransport {
	if config.Port == 0 {
		config.Port = 22
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	return &SSHTransport{config: config}
}

// Exec runs argv on the host and returns the command result. A non-zero
// remote exit code is reported in the result, not as an error; errors are
// reserved for connection and session failures.
func (t *SSHTransport) Exec(ctx context.Context, host domain.Host, argv []string) (*CommandResult, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command for host %q", host.Name)
	}

	client, err := t.connect(ctx, host)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("create session on %q: %w", host.Name, err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(shellQuote(argv))
	}()

	select {
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return nil, fmt.Errorf("command on %q: %w", host.Name, ctx.Err())
	case err = <-done:
	}

	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*ssh.ExitError); ok {
			result.ExitCode = exitErr.ExitStatus()
			return result, nil
		}
		return nil, fmt.Errorf("run command on %q: %w", host.Name, err)
	}

	return result, nil
}

// connect establishes an SSH connection to the host using the inventory
// credentials, falling back to the transport defaults.
func (t *SSHTransport) connect(ctx context.Context, host domain.Host) (*ssh.Client, error) {
	config, err := t.clientConfig(host)
	if err != nil {
		return nil, fmt.Errorf("ssh config for %q: %w", host.Name, err)
	}

	addr := fmt.Sprintf("%s:%d", host.Address(), t.config.Port)

	dialer := &net.Dialer{Timeout: t.config.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %q: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %q: %w", addr, err)
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}

func (t *SSHTransport) clientConfig(host domain.Host) (*ssh.ClientConfig, error) {
	user := host.Username
	if user == "" {
		user = t.config.User
	}

	var methods []ssh.AuthMethod
	if len(t.config.PrivateKey) > 0 {
		signer, err := ssh.ParsePrivateKey(t.config.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if password := firstNonEmpty(host.Password, t.config.Password); password != "" {
		methods = append(methods, ssh.Password(password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method configured")
	}

	return &ssh.ClientConfig{
		User:            user,
		Auth:            methods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         t.config.ConnectTimeout,
	}, nil
}

// shellQuote renders argv as a single shell command line with each argument
// single-quoted.
func shellQuote(argv []string) string {
	var buf bytes.Buffer
	for i, arg := range argv {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte('\'')
		for _, r := range arg {
			if r == '\'' {
				buf.WriteString(`'\''`)
				continue
			}
			buf.WriteRune(r)
		}
		buf.WriteByte('\'')
	}
	return buf.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
