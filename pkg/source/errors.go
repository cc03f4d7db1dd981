package source

import (
	"strconv"
)

// ErrUnknownScheme is returned for a URL that is neither http(s) nor
// file.
type ErrUnknownScheme struct {
	url string
}

// NewErrUnknownScheme returns a new error for the attempted URL.
func NewErrUnknownScheme(u string) ErrUnknownScheme {
	return ErrUnknownScheme{u}
}

func (e ErrUnknownScheme) Error() string {
	return "unknown scheme in " + e.url + ", must be either file or http(s)"
}

// ErrBadStatus is returned when a server answers with anything but a
// success.
type ErrBadStatus struct {
	url  string
	code int
}

func (e ErrBadStatus) Error() string {
	return e.url + " returned status " + strconv.Itoa(e.code)
}
