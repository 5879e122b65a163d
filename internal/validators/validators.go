package validators

import (
	"net"
	"strings"
	"time"
)

// IsEmailDomainValid checks that the email's domain resolves, either
// through MX records or a plain host lookup.
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

// IsTimeHHMM reports whether s is a valid "HH:MM" clock value.
func IsTimeHHMM(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsDateYMD reports whether s is a valid "YYYY-MM-DD" date.
func IsDateYMD(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
