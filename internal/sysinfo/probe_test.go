package sysinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func fixedPlatform(system string, priv Privilege) Option {
	return WithPlatform(
		func() Platform {
			return Platform{System: system, Version: "#1 SMP", Release: "6.1.0", Machine: "x86_64"}
		},
		func() Privilege { return priv },
	)
}

func writeRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCollect_Linux(t *testing.T) {
	release := writeRelease(t, `NAME="Ubuntu"
ID=ubuntu
VERSION_ID="22.04"
PRETTY_NAME="Ubuntu 22.04.4 LTS"
`)

	var gotName string
	var gotArgs []string
	p := NewProbe(
		fixedPlatform("Linux", PrivilegeRegular),
		WithReleaseFiles(filepath.Join(t.TempDir(), "missing"), release),
		WithGetenv(fakeEnv(map[string]string{"SHELL": "/bin/bash"})),
		WithRunner(func(_ context.Context, name string, args ...string) (string, error) {
			gotName, gotArgs = name, args
			return "GNU bash, version 5.2.15(1)-release\nCopyright (C) 2022\n", nil
		}),
	)

	info := p.Collect(context.Background())

	assert.Equal(t, "/bin/bash", gotName)
	assert.Equal(t, []string{"--version"}, gotArgs)
	assert.Equal(t, []string{
		KeyOSType, KeyOSVersion, KeyOSRelease, KeyMachine, KeyArchitecture, KeyUserPrivileges,
		KeyDistroName, KeyDistroVersion, KeyDistroID,
		KeyShell, KeyShellVersion, KeyPrivileges,
	}, info.Keys())

	want := map[string]string{
		KeyOSType:         "Linux",
		KeyOSRelease:      "6.1.0",
		KeyMachine:        "x86_64",
		KeyUserPrivileges: "Regular User",
		KeyDistroName:     "Ubuntu 22.04.4 LTS",
		KeyDistroVersion:  "22.04",
		KeyDistroID:       "ubuntu",
		KeyShell:          "bash",
		KeyShellVersion:   "GNU bash, version 5.2.15(1)-release",
		KeyPrivileges:     "Non-Admin",
	}
	for k, v := range want {
		got, ok := info.Get(k)
		assert.True(t, ok, k)
		assert.Equal(t, v, got, k)
	}
}

func TestCollect_LinuxWithoutRelease(t *testing.T) {
	p := NewProbe(
		fixedPlatform("Linux", PrivilegeElevated),
		WithReleaseFiles(filepath.Join(t.TempDir(), "missing")),
		WithGetenv(fakeEnv(nil)),
	)

	info := p.Collect(context.Background())

	for _, k := range []string{KeyDistroName, KeyDistroVersion, KeyDistroID, KeyShell, KeyShellVersion} {
		v, ok := info.Get(k)
		assert.True(t, ok, k)
		assert.Equal(t, Unknown, v, k)
	}
	v, _ := info.Get(KeyUserPrivileges)
	assert.Equal(t, "Root", v)
	v, _ = info.Get(KeyPrivileges)
	assert.Equal(t, "Admin", v)
}

func TestCollect_Darwin(t *testing.T) {
	p := NewProbe(
		fixedPlatform("Darwin", PrivilegeRegular),
		WithGetenv(fakeEnv(map[string]string{"SHELL": "/bin/zsh"})),
		WithRunner(func(context.Context, string, ...string) (string, error) {
			return "zsh 5.9 (arm64-apple-darwin23.0)\n", nil
		}),
	)

	info := p.Collect(context.Background())

	v, ok := info.Get(KeyDistroName)
	assert.True(t, ok)
	assert.Equal(t, "macOS", v)
	_, ok = info.Get(KeyDistroID)
	assert.False(t, ok)
	v, _ = info.Get(KeyShellVersion)
	assert.Equal(t, "zsh 5.9 (arm64-apple-darwin23.0)", v)
}

func TestCollect_WindowsComspecFallback(t *testing.T) {
	p := NewProbe(
		fixedPlatform("Windows", PrivilegeUnknown),
		WithGetenv(fakeEnv(map[string]string{"COMSPEC": `C:\Windows\system32\cmd.exe`})),
		WithRunner(func(context.Context, string, ...string) (string, error) {
			return "", nil
		}),
	)

	info := p.Collect(context.Background())

	_, ok := info.Get(KeyDistroName)
	assert.False(t, ok)
	v, _ := info.Get(KeyShellVersion)
	assert.Equal(t, Unknown, v, "empty output reports Unknown")
	v, _ = info.Get(KeyUserPrivileges)
	assert.Equal(t, Unknown, v)
	v, _ = info.Get(KeyPrivileges)
	assert.Equal(t, Unknown, v)
}

func TestCollect_ShellVersionFailureIsSwallowed(t *testing.T) {
	p := NewProbe(
		fixedPlatform("FreeBSD", PrivilegeRegular),
		WithGetenv(fakeEnv(map[string]string{"SHELL": "/usr/local/bin/fish"})),
		WithRunner(func(context.Context, string, ...string) (string, error) {
			return "", errors.New("exec: not found")
		}),
	)

	info := p.Collect(context.Background())

	v, _ := info.Get(KeyShell)
	assert.Equal(t, "fish", v)
	v, _ = info.Get(KeyShellVersion)
	assert.Equal(t, Unknown, v)
}

func TestCollect_RealShellMissing(t *testing.T) {
	p := NewProbe(
		fixedPlatform("Linux", PrivilegeRegular),
		WithReleaseFiles(),
		WithGetenv(fakeEnv(map[string]string{"SHELL": filepath.Join(t.TempDir(), "no-such-shell")})),
	)

	info := p.Collect(context.Background())

	v, _ := info.Get(KeyShellVersion)
	assert.Equal(t, Unknown, v)
}

func TestInfo_String(t *testing.T) {
	b := newBuilder()
	b.set(KeyOSType, "Linux")
	b.set(KeyShell, "")
	b.set(KeyOSType, "Darwin")
	info := b.build()

	assert.Equal(t, "{OS Type: Darwin, Shell: Unknown}", info.String())
	assert.Equal(t, 2, info.Len())

	m := info.Map()
	m[KeyOSType] = "changed"
	v, _ := info.Get(KeyOSType)
	assert.Equal(t, "Darwin", v, "Map returns a copy")
}

func TestSystemName(t *testing.T) {
	tests := map[string]string{
		"linux":   "Linux",
		"darwin":  "Darwin",
		"windows": "Windows",
		"freebsd": "FreeBSD",
		"plan9":   "Plan9",
		"":        Unknown,
	}
	for goos, want := range tests {
		assert.Equal(t, want, systemName(goos), goos)
	}
}

func TestPrivilegeFromElevation(t *testing.T) {
	tests := []struct {
		name     string
		elevated bool
		err      error
		want     Privilege
		user     string
		admin    string
	}{
		{"elevated", true, nil, PrivilegeElevated, "Root", "Admin"},
		{"regular", false, nil, PrivilegeRegular, "Regular User", "Non-Admin"},
		{"query failed", false, errors.New("access denied"), PrivilegeUnknown, Unknown, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := privilegeFromElevation(tt.elevated, tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.user, got.UserLabel())
			assert.Equal(t, tt.admin, got.AdminLabel())
		})
	}
}

func TestInfo_MarshalKeepsOrder(t *testing.T) {
	p := NewProbe(
		fixedPlatform("Darwin", PrivilegeElevated),
		WithGetenv(fakeEnv(nil)),
	)
	info := p.Collect(context.Background())

	data, err := json.Marshal(info)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"OS Type": "Darwin", "OS Version": "#1 SMP", "OS Release": "6.1.0",
		"Machine": "x86_64", "Architecture": "`+strconv.Itoa(strconv.IntSize)+`bit",
		"User Privileges": "Root", "Distro Name": "macOS",
		"Shell": "Unknown", "Shell Version": "Unknown", "Privileges": "Admin"
	}`, string(data))
	assertKeyOrder(t, string(data), info.Keys(), `"%s"`)

	out, err := yaml.Marshal(info)
	require.NoError(t, err)
	var back map[string]string
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, info.Map(), back)
	assert.Equal(t, "6.1.0", back[KeyOSRelease])
	assertKeyOrder(t, "\n"+string(out), info.Keys(), "\n%s:")
}

func assertKeyOrder(t *testing.T, doc string, keys []string, format string) {
	t.Helper()
	last := -1
	for _, k := range keys {
		idx := strings.Index(doc, fmt.Sprintf(format, k))
		require.GreaterOrEqual(t, idx, 0, "missing key %q", k)
		assert.Greater(t, idx, last, "key %q out of order", k)
		last = idx
	}
}
