package rsvp

import "fmt"

const (
	msgNotFound  = "No encontramos ese código. Revísalo e inténtalo de nuevo."
	msgInactive  = "Este código ya no está activo. Por favor comunícate con los novios."
	msgMissing   = "Ingresa el código que aparece en tu invitación."
	msgGeneric   = "No pudimos confirmar tu asistencia. Inténtalo de nuevo en unos minutos."
	msgTransport = "No pudimos conectarnos para confirmar tu asistencia. Revisa tu conexión e inténtalo de nuevo."
)

// DomainMessage maps an endpoint error code to guest-facing copy.
func DomainMessage(code string) string {
	switch code {
	case CodeNotFound:
		return msgNotFound
	case CodeInactiveCode:
		return msgInactive
	case CodeMissingCode:
		return msgMissing
	default:
		return msgGeneric
	}
}

func TransportMessage() string { return msgTransport }

// SuccessMessage words the confirmation by pass count and by whether the
// guest had already confirmed before.
func SuccessMessage(c Confirmation) string {
	name := c.DisplayName
	if name == "" {
		name = DefaultGuestName
	}

	if c.AlreadyConfirmed {
		return fmt.Sprintf("%s, tu asistencia ya estaba confirmada. Tienes %s reservado%s. ¡Te esperamos!",
			name, passes(c.MaxPases), plural(c.MaxPases))
	}
	return fmt.Sprintf("Gracias por confirmar tu asistencia, %s. Tienes %s. Úsalos sabiamente ✨",
		name, passes(c.MaxPases))
}

func passes(n int) string {
	return fmt.Sprintf("%d pase%s", n, plural(n))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
