// redact маскирует персональные данные из контактной формы перед записью в лог.
package redact

import "strings"

// Email маскирует e-mail: первые две руны локальной части + "***", домен как есть.
//
//	"foobar@example.com" -> "fo***@example.com"
//	"ab@ex.com"          -> "***@ex.com"
//	"no-at"              -> "***"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := []rune(s[:i]), s[i+1:]

	if len(local) <= 2 {
		return "***@" + domain
	}

	return string(local[:2]) + "***@" + domain
}

// Preview обрезает текст сообщения до max рун, добавляя "…" при усечении.
// max <= 0 возвращает пустую строку.
func Preview(s string, max int) string {
	if max <= 0 {
		return ""
	}

	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}

	return string(r[:max]) + "…"
}
