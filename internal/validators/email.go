package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail faz validação sintática barata, sem tocar na rede.
// Usada no fluxo público de agendamento.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsEmailDomainValid verifica se o domínio do e-mail resolve (MX ou A).
// Usada apenas no cadastro de petshop, onde uma consulta DNS é aceitável.
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
