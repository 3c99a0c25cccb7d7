//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

package sysinfo

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// hostPlatform reads the platform fields from uname(2).
func hostPlatform() Platform {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return fallbackPlatform()
	}
	return Platform{
		System:  unix.ByteSliceToString(u.Sysname[:]),
		Version: unix.ByteSliceToString(u.Version[:]),
		Release: unix.ByteSliceToString(u.Release[:]),
		Machine: unix.ByteSliceToString(u.Machine[:]),
	}
}

// hostPrivilege treats effective uid 0 as elevated.
func hostPrivilege() Privilege {
	if unix.Geteuid() == 0 {
		return PrivilegeElevated
	}
	return PrivilegeRegular
}

func fallbackPlatform() Platform {
	return Platform{System: systemName(runtime.GOOS), Machine: runtime.GOARCH}
}
