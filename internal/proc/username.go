package proc

import (
	"os/user"
	"strconv"
)

// userName resolves a uid to its login name, falling back to the decimal
// uid when the lookup fails.
func userName(uid int) string {
	if u, err := user.LookupId(strconv.Itoa(uid)); err == nil {
		return u.Username
	}
	return strconv.Itoa(uid)
}
