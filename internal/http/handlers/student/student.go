// Package student contains the six student views.
//
// HANDLER PATTERN: CLOSURE / FACTORY
// ────────────────────────────────────────────────────────────
// Each view is a factory that receives its dependencies (storage and the
// page renderer) once at startup and returns the http.HandlerFunc the
// router calls on every request:
//
//	r.Post("/new-student", student.New(storage, pages))
//
// Every view has the same shape. GET shows the idle form (see Show). POST
// reads the form, makes exactly one storage call, and renders the form
// again with a success or error alert and, for the read views, the
// returned payload. A failure is logged and alerted; nothing is retried
// and no partial payload is rendered.
package student

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-ui/internal/http/templates"
	"github.com/aanand-mishra/students-ui/internal/storage"
	"github.com/aanand-mishra/students-ui/internal/types"
	"github.com/aanand-mishra/students-ui/internal/utils/response"
)

// Alert messages, one pair per view.
const (
	MsgCreated      = "Student added successfully"
	MsgCreateFailed = "Error adding student"

	MsgFetchFailed = "Error fetching student"

	MsgFetchAllFailed = "Error fetching students"

	MsgDeleted      = "Student deleted successfully"
	MsgDeleteFailed = "Error deleting student"

	MsgDeletedAll      = "All students deleted successfully"
	MsgDeleteAllFailed = "Error deleting all students"

	MsgUpdated      = "Student updated successfully"
	MsgUpdateFailed = "Error updating student"
)

var validate = validator.New()

// Show renders page with an idle form.
func Show(pages *templates.Renderer, page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, pages, page, templates.Page{Title: title})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /new-student
// Creates a student from the name, email and age form fields.
//
// All three fields are required. A missing field or a non-numeric age
// fails the submission without calling the API.
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage, pages *templates.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		page := templates.Page{Title: "New Student"}

		if err := r.ParseForm(); err != nil {
			fail(w, pages, templates.NewStudent, page, MsgCreateFailed, err)
			return
		}
		page.Form = formValues(r, "name", "email", "age")

		in, err := parseInput(page.Form)
		if err != nil {
			fail(w, pages, templates.NewStudent, page, MsgCreateFailed, err)
			return
		}

		if err := storage.CreateStudent(r.Context(), in); err != nil {
			fail(w, pages, templates.NewStudent, page, MsgCreateFailed, err)
			return
		}

		slog.Info("student created", slog.String("name", in.Name))
		succeed(w, pages, templates.NewStudent, page, MsgCreated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles POST /get-by-id
//
// The single input is named "age" and its value is used as the resource
// key: GET {base}{age}. On success the student's name, email and age are
// shown; there is no success alert. On failure nothing is shown.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage, pages *templates.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := templates.Page{Title: "Get by ID"}

		if err := r.ParseForm(); err != nil {
			fail(w, pages, templates.GetByID, page, MsgFetchFailed, err)
			return
		}
		page.Form = formValues(r, "age")

		key := page.Form["age"]
		slog.Info("getting a student", slog.String("key", key))

		student, err := storage.GetStudent(r.Context(), key)
		if err != nil {
			fail(w, pages, templates.GetByID, page, MsgFetchFailed, err)
			return
		}

		page.Student = &student
		render(w, pages, templates.GetByID, page)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles POST /get-all
// Lists every student as "name - email - age", one item per student.
// An empty result renders no list.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage, pages *templates.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		page := templates.Page{Title: "Get All Students"}

		students, err := storage.GetStudents(r.Context())
		if err != nil {
			fail(w, pages, templates.GetAll, page, MsgFetchAllFailed, err)
			return
		}

		page.Students = students
		render(w, pages, templates.GetAll, page)
	}
}

// Delete handles POST /delete-by-id.
func Delete(storage storage.Storage, pages *templates.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := templates.Page{Title: "Delete by ID"}

		if err := r.ParseForm(); err != nil {
			fail(w, pages, templates.DeleteByID, page, MsgDeleteFailed, err)
			return
		}
		page.Form = formValues(r, "id")

		id := page.Form["id"]
		slog.Info("deleting a student", slog.String("id", id))

		if err := storage.DeleteStudent(r.Context(), id); err != nil {
			fail(w, pages, templates.DeleteByID, page, MsgDeleteFailed, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		succeed(w, pages, templates.DeleteByID, page, MsgDeleted)
	}
}

// DeleteAll handles POST /delete-all.
func DeleteAll(storage storage.Storage, pages *templates.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("deleting all students")

		page := templates.Page{Title: "Delete All Students"}

		if err := storage.DeleteStudents(r.Context()); err != nil {
			fail(w, pages, templates.DeleteAll, page, MsgDeleteAllFailed, err)
			return
		}

		slog.Info("all students deleted")
		succeed(w, pages, templates.DeleteAll, page, MsgDeletedAll)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles POST /update-by-id
//
// Unlike create, name, email and age are all optional: only the fields
// the user filled in are sent, so any subset (even none) is accepted.
// A non-numeric age fails the submission without calling the API.
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage, pages *templates.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := templates.Page{Title: "Update Student by ID"}

		if err := r.ParseForm(); err != nil {
			fail(w, pages, templates.UpdateByID, page, MsgUpdateFailed, err)
			return
		}
		page.Form = formValues(r, "id", "name", "email", "age")

		id := page.Form["id"]
		slog.Info("updating a student", slog.String("id", id))

		patch, err := parsePatch(page.Form)
		if err != nil {
			fail(w, pages, templates.UpdateByID, page, MsgUpdateFailed, err)
			return
		}

		if err := storage.UpdateStudent(r.Context(), id, patch); err != nil {
			fail(w, pages, templates.UpdateByID, page, MsgUpdateFailed, err)
			return
		}

		slog.Info("student updated", slog.String("id", id))
		succeed(w, pages, templates.UpdateByID, page, MsgUpdated)
	}
}

// formValues copies the named fields out of the parsed form.
func formValues(r *http.Request, keys ...string) map[string]string {
	form := make(map[string]string, len(keys))
	for _, k := range keys {
		form[k] = r.PostForm.Get(k)
	}
	return form
}

// createForm is the create form as submitted. Presence is checked on the
// raw strings, so an age of "0" counts as filled in.
type createForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
	Age   string `validate:"required"`
}

func parseInput(form map[string]string) (types.StudentInput, error) {
	raw := createForm{
		Name:  form["name"],
		Email: form["email"],
		Age:   strings.TrimSpace(form["age"]),
	}

	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return types.StudentInput{}, errors.New(response.ValidationError(verrs).Error)
		}
		return types.StudentInput{}, err
	}

	age, err := strconv.Atoi(raw.Age)
	if err != nil {
		return types.StudentInput{}, fmt.Errorf("invalid age %q: must be an integer", raw.Age)
	}

	return types.StudentInput{Name: raw.Name, Email: raw.Email, Age: age}, nil
}

func parsePatch(form map[string]string) (types.StudentPatch, error) {
	var patch types.StudentPatch

	if name := form["name"]; name != "" {
		patch.Name = &name
	}
	if email := form["email"]; email != "" {
		patch.Email = &email
	}
	if raw := strings.TrimSpace(form["age"]); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return types.StudentPatch{}, fmt.Errorf("invalid age %q: must be an integer", raw)
		}
		patch.Age = &age
	}

	return patch, nil
}

func succeed(w http.ResponseWriter, pages *templates.Renderer, name string, page templates.Page, msg string) {
	page.Alert = &templates.Alert{Kind: templates.AlertSuccess, Message: msg}
	render(w, pages, name, page)
}

// fail logs err and renders the page with an error alert. The payload
// fields are cleared so nothing partial is shown.
func fail(w http.ResponseWriter, pages *templates.Renderer, name string, page templates.Page, msg string, err error) {
	slog.Error(strings.ToLower(msg), slog.String("error", err.Error()))

	page.Student = nil
	page.Students = nil
	page.Alert = &templates.Alert{Kind: templates.AlertError, Message: msg}
	render(w, pages, name, page)
}

func render(w http.ResponseWriter, pages *templates.Renderer, name string, page templates.Page) {
	if err := pages.Render(w, http.StatusOK, name, page); err != nil {
		slog.Error("error rendering page",
			slog.String("page", name),
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
