package pubip

import (
	"regexp"
	"strconv"
	"strings"
)

var dottedQuad = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

// IsPublicIPv4 reports whether ip is a dotted-quad IPv4 address outside the
// private and loopback ranges 10/8, 127/8, 172.16/12 and 192.168/16. Other
// reserved ranges (link-local, multicast) are deliberately not excluded; this
// filter must stay in sync with what the discovery services can return.
func IsPublicIPv4(ip string) bool {
	if !dottedQuad.MatchString(ip) {
		return false
	}

	parts := strings.Split(ip, ".")
	octets := make([]int, len(parts))
	for i := range parts {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 || n > 255 {
			return false
		}
		octets[i] = n
	}

	switch {
	case octets[0] == 10 || octets[0] == 127:
		return false
	case octets[0] == 172 && octets[1] >= 16 && octets[1] <= 31:
		return false
	case octets[0] == 192 && octets[1] == 168:
		return false
	}

	return true
}
