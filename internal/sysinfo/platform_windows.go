//go:build windows

package sysinfo

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

func hostPlatform() Platform {
	machine := os.Getenv("PROCESSOR_ARCHITECTURE")
	if machine == "" {
		machine = runtime.GOARCH
	}

	v := windows.RtlGetVersion()
	if v == nil {
		return Platform{System: "Windows", Machine: machine}
	}
	return Platform{
		System:  "Windows",
		Version: fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber),
		Release: fmt.Sprintf("%d", v.MajorVersion),
		Machine: machine,
	}
}

// hostPrivilege reads TokenElevation from the process token. The flag is
// only meaningful when UAC is enabled.
func hostPrivilege() Privilege {
	return privilegeFromElevation(tokenElevated())
}

func tokenElevated() (bool, error) {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false, err
	}
	defer token.Close()

	var elevation, n uint32
	err := windows.GetTokenInformation(token, windows.TokenElevation,
		(*byte)(unsafe.Pointer(&elevation)), uint32(unsafe.Sizeof(elevation)), &n)
	if err != nil {
		return false, err
	}
	return elevation != 0, nil
}
