package storage

import "io"

// Storage is the narrow interface the controllers use for uploaded
// binaries: store bytes under a generated name, delete by name. Keeping it
// this small keeps filesystem side effects out of the request logic.
type Storage interface {
	// Save writes the content and returns the generated file name.
	Save(r io.Reader, originalName string) (string, error)
	// Delete removes a stored file. A missing file is not an error.
	Delete(name string) error
}
