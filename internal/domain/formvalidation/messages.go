package formvalidation

import "net/http"

const (
	MsgRequired          = "Este campo es obligatorio."
	MsgInvalidEmail      = "Ingresa un correo electrónico válido."
	MsgPasswordMismatch  = "Las contraseñas no coinciden."
	MsgPasswordLength    = "La contraseña debe tener al menos 8 caracteres."
	MsgPasswordUpper     = "Debe incluir al menos una letra mayúscula."
	MsgPasswordLower     = "Debe incluir al menos una letra minúscula."
	MsgPasswordDigit     = "Debe incluir al menos un número o símbolo."
	MsgNameTooShort      = "El nombre debe tener al menos 2 caracteres."
	MsgAccountType       = "Selecciona un tipo de cuenta válido."
	MsgCertificate       = "El certificado es obligatorio para cuentas de mecánico."
	MsgCertificateFormat = "El certificado debe ser un archivo PDF, JPG o PNG."
	MsgCertificateSize   = "El certificado no puede superar los 5 MB."
	MsgTerms             = "Debes aceptar los términos y condiciones."
	MsgRating            = "Selecciona una calificación entre 1 y 5."
	MsgCommentTooLong    = "El comentario no puede superar los 500 caracteres."

	MsgEmailTaken        = "El correo ya está registrado"
	MsgInvalidLogin      = "Correo o contraseña incorrectos."
	MsgTooManyRequests   = "Demasiados intentos. Intenta de nuevo en unos minutos."
	MsgBadRequest        = "Revisa los datos del formulario."
	MsgServerError       = "Ocurrió un error. Intenta nuevamente."
	MsgRecoveryRequested = "Si el correo existe, recibirás instrucciones para recuperar tu contraseña."
	MsgNetworkError      = "No se pudo conectar con el servidor."
)

// StatusMessage maps a server response status to the form-level status line.
func StatusMessage(form FormType, status int) string {
	switch {
	case status >= 200 && status < 300:
		if form == FormRecovery {
			return MsgRecoveryRequested
		}
		return ""
	case status == http.StatusConflict && form == FormRegister:
		return MsgEmailTaken
	case status == http.StatusUnauthorized && form == FormLogin:
		return MsgInvalidLogin
	case status == http.StatusTooManyRequests:
		return MsgTooManyRequests
	case status >= 400 && status < 500:
		return MsgBadRequest
	case status == 0:
		return MsgNetworkError
	default:
		return MsgServerError
	}
}
