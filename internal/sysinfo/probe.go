package sysinfo

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultShellTimeout = 3 * time.Second

var defaultReleaseFiles = []string{"/etc/os-release", "/usr/lib/os-release"}

// RunFunc runs a program and returns its standard output.
type RunFunc func(ctx context.Context, name string, args ...string) (string, error)

// Probe collects system information. The zero value is not usable, use NewProbe.
type Probe struct {
	getenv       func(string) string
	run          RunFunc
	platform     func() Platform
	privilege    func() Privilege
	releaseFiles []string
	shellTimeout time.Duration
}

// Option configures a Probe
type Option func(*Probe)

// WithGetenv overrides environment lookups
func WithGetenv(fn func(string) string) Option {
	return func(p *Probe) { p.getenv = fn }
}

// WithRunner overrides how the shell version command is executed
func WithRunner(fn RunFunc) Option {
	return func(p *Probe) { p.run = fn }
}

// WithPlatform overrides the host platform and privilege readers
func WithPlatform(platform func() Platform, privilege func() Privilege) Option {
	return func(p *Probe) {
		p.platform = platform
		p.privilege = privilege
	}
}

// WithReleaseFiles overrides the os-release lookup paths, first existing wins
func WithReleaseFiles(paths ...string) Option {
	return func(p *Probe) { p.releaseFiles = paths }
}

// WithShellTimeout bounds the shell version command
func WithShellTimeout(d time.Duration) Option {
	return func(p *Probe) { p.shellTimeout = d }
}

// NewProbe creates a Probe reading from the current host
func NewProbe(opts ...Option) *Probe {
	p := &Probe{
		getenv:       os.Getenv,
		run:          runOutput,
		platform:     hostPlatform,
		privilege:    hostPrivilege,
		releaseFiles: defaultReleaseFiles,
		shellTimeout: defaultShellTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Collect probes the host using default settings
func Collect(ctx context.Context) Info {
	return NewProbe().Collect(ctx)
}

// Collect gathers the snapshot. It never fails: anything that cannot be
// determined is reported as Unknown.
func (p *Probe) Collect(ctx context.Context) Info {
	b := newBuilder()

	plat := p.platform()
	priv := p.privilege()

	b.set(KeyOSType, plat.System)
	b.set(KeyOSVersion, plat.Version)
	b.set(KeyOSRelease, plat.Release)
	b.set(KeyMachine, plat.Machine)
	b.set(KeyArchitecture, strconv.Itoa(strconv.IntSize)+"bit")
	b.set(KeyUserPrivileges, priv.UserLabel())

	switch plat.System {
	case "Linux":
		name, version, id := p.distro()
		b.set(KeyDistroName, name)
		b.set(KeyDistroVersion, version)
		b.set(KeyDistroID, id)
	case "Darwin":
		b.set(KeyDistroName, "macOS")
	}

	shell, version := p.shell(ctx)
	b.set(KeyShell, shell)
	b.set(KeyShellVersion, version)

	b.set(KeyPrivileges, priv.AdminLabel())

	return b.build()
}

// distro reads the freedesktop.org os-release file.
func (p *Probe) distro() (name, version, id string) {
	for _, path := range p.releaseFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fields, err := godotenv.Read(path)
		if err != nil {
			return "", "", ""
		}
		name = fields["PRETTY_NAME"]
		if name == "" {
			name = fields["NAME"]
		}
		return name, fields["VERSION_ID"], fields["ID"]
	}
	return "", "", ""
}

// shell detects the active shell from $SHELL, then %COMSPEC%, and asks it
// for its version.
func (p *Probe) shell(ctx context.Context) (name, version string) {
	path := p.getenv("SHELL")
	if path == "" {
		path = p.getenv("COMSPEC")
	}
	if path == "" {
		return Unknown, Unknown
	}
	name = filepath.Base(path)

	ctx, cancel := context.WithTimeout(ctx, p.shellTimeout)
	defer cancel()

	out, err := p.run(ctx, path, "--version")
	if err != nil {
		return name, Unknown
	}
	return name, firstLine(out)
}

func firstLine(s string) string {
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return Unknown
}

func runOutput(ctx context.Context, name string, args ...string) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// systemName maps a GOOS value to the name uname would report.
func systemName(goos string) string {
	switch goos {
	case "linux", "android":
		return "Linux"
	case "darwin", "ios":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "netbsd":
		return "NetBSD"
	case "openbsd":
		return "OpenBSD"
	case "":
		return Unknown
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}
