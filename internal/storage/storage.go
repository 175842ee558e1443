// Package storage defines the Storage interface, the contract the views
// depend on to read and write student records.
//
// The UI keeps nothing locally: the only implementation is the remote
// students API (package remote). Views depend on this interface instead,
// so tests can hand them a fake and count calls.
package storage

import (
	"context"

	"github.com/aanand-mishra/students-ui/internal/types"
)

// Storage is the student records contract. Every method performs exactly
// one call against the backing store.
//
// Keys and ids are passed through as the user typed them; the backing
// store decides whether they are valid.
type Storage interface {
	// CreateStudent adds a new student. The created resource is not
	// returned: its shape is up to the store.
	CreateStudent(ctx context.Context, in types.StudentInput) error

	// GetStudent fetches one student by key.
	GetStudent(ctx context.Context, key string) (types.Student, error)

	// GetStudents returns every student. An empty store yields an empty
	// slice and no error.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudent sends the populated fields of patch for student id.
	UpdateStudent(ctx context.Context, id string, patch types.StudentPatch) error

	// DeleteStudent removes one student.
	DeleteStudent(ctx context.Context, id string) error

	// DeleteStudents removes every student.
	DeleteStudents(ctx context.Context) error
}
