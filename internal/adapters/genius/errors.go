package genius

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("genius: not found")

// ErrNoToken: falta GENIUS_API_KEY.
var ErrNoToken = errors.New("genius: missing api token")

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("genius api status %d: %s", e.Status, e.Body)
}
