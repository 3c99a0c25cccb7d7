package sysinfo

// Privilege is the privilege level of the current process.
type Privilege int

const (
	PrivilegeUnknown Privilege = iota // Could not be determined on this platform
	PrivilegeRegular
	PrivilegeElevated // root on POSIX, elevated token on Windows
)

// privilegeFromElevation maps an elevation query to a Privilege. A failed
// query is Unknown, not Regular.
func privilegeFromElevation(elevated bool, err error) Privilege {
	switch {
	case err != nil:
		return PrivilegeUnknown
	case elevated:
		return PrivilegeElevated
	default:
		return PrivilegeRegular
	}
}

// UserLabel renders the privilege for the "User Privileges" key
func (p Privilege) UserLabel() string {
	switch p {
	case PrivilegeElevated:
		return "Root"
	case PrivilegeRegular:
		return "Regular User"
	default:
		return Unknown
	}
}

// AdminLabel renders the privilege for the "Privileges" key
func (p Privilege) AdminLabel() string {
	switch p {
	case PrivilegeElevated:
		return "Admin"
	case PrivilegeRegular:
		return "Non-Admin"
	default:
		return Unknown
	}
}

// Platform holds what the host reports about its operating system.
type Platform struct {
	System  string // e.g. Linux, Darwin, Windows
	Version string
	Release string
	Machine string
}
