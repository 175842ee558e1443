// Package types holds the data structures shared by the views and the
// remote storage layer. Keeping them in one place prevents import cycles:
// handlers and storage can both import types without depending on each
// other.
package types

// Student is a student record as returned by the students API.
//
// The json:"..." tags match the API's lowercase keys. The ID is assigned
// by the server; the UI never invents one.
type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// StudentInput is the body sent when creating a student. All three
// fields are always sent; an age of 0 is encoded as 0.
type StudentInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// StudentPatch is the body sent when updating a student.
//
// Every field is optional. Pointer fields plus omitempty mean only the
// fields the user actually filled in are serialized, so
// StudentPatch{} encodes to {}.
type StudentPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
}
