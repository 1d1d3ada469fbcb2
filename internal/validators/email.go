package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks the domain behind an address actually resolves.
// Used before queueing approval emails so an obvious typo fails at intake
// instead of silently dropping on the notification path.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
