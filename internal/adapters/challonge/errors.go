package challonge

import "fmt"

// APIError: cualquier respuesta distinta de 200. No se reintenta.
type APIError struct {
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("challonge %s: status %d: %s", e.Path, e.Status, e.Body)
}
