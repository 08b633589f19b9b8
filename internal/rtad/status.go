package rtad

// StatusClass is the row class derived from a proxy row's HTTP status code.
type StatusClass string

const (
	StatusNone        StatusClass = ""
	StatusOK          StatusClass = "ok"
	StatusRedirect    StatusClass = "redirect"
	StatusClientError StatusClass = "client-error"
	StatusServerError StatusClass = "server-error"
)

// StatusClassFor maps an HTTP status code to a row class.
//
// Only 200 is "ok" and only 500 is "server-error"; 201 or 502 get no class.
func StatusClassFor(code int) StatusClass {
	switch {
	case code == 200:
		return StatusOK
	case code >= 300 && code <= 399:
		return StatusRedirect
	case code == 500:
		return StatusServerError
	case code == 404, code == 403, code >= 400 && code <= 499:
		return StatusClientError
	default:
		return StatusNone
	}
}
