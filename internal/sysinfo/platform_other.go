//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || windows)

package sysinfo

import "runtime"

func hostPlatform() Platform {
	return Platform{System: systemName(runtime.GOOS), Machine: runtime.GOARCH}
}

func hostPrivilege() Privilege {
	return PrivilegeUnknown
}
