package student

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-ui/internal/http/templates"
	"github.com/aanand-mishra/students-ui/internal/storage"
	"github.com/aanand-mishra/students-ui/internal/types"
)

// fakeStorage records every call and returns canned results.
type fakeStorage struct {
	err      error
	student  types.Student
	students []types.Student

	calls []string
	input types.StudentInput
	patch types.StudentPatch
	keys  []string
}

var _ storage.Storage = (*fakeStorage)(nil)

func (f *fakeStorage) CreateStudent(_ context.Context, in types.StudentInput) error {
	f.calls = append(f.calls, "CreateStudent")
	f.input = in
	return f.err
}

func (f *fakeStorage) GetStudent(_ context.Context, key string) (types.Student, error) {
	f.calls = append(f.calls, "GetStudent")
	f.keys = append(f.keys, key)
	if f.err != nil {
		return types.Student{}, f.err
	}
	return f.student, nil
}

func (f *fakeStorage) GetStudents(_ context.Context) ([]types.Student, error) {
	f.calls = append(f.calls, "GetStudents")
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

func (f *fakeStorage) UpdateStudent(_ context.Context, id string, patch types.StudentPatch) error {
	f.calls = append(f.calls, "UpdateStudent")
	f.keys = append(f.keys, id)
	f.patch = patch
	return f.err
}

func (f *fakeStorage) DeleteStudent(_ context.Context, id string) error {
	f.calls = append(f.calls, "DeleteStudent")
	f.keys = append(f.keys, id)
	return f.err
}

func (f *fakeStorage) DeleteStudents(_ context.Context) error {
	f.calls = append(f.calls, "DeleteStudents")
	return f.err
}

var errAPI = errors.New("connection refused")

func post(t *testing.T, h http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func assertAlert(t *testing.T, body, msg string) {
	t.Helper()
	assert.Contains(t, body, `role="alert">`+msg+`</p>`)
	assert.Contains(t, body, `alert("`+msg+`")`)
}

func assertNoAlert(t *testing.T, body string) {
	t.Helper()
	assert.NotContains(t, body, `role="alert"`)
}

// --- Show ---

func TestShow(t *testing.T) {
	w := httptest.NewRecorder()
	Show(templates.MustNew(), templates.NewStudent, "New Student")(w, httptest.NewRequest(http.MethodGet, "/new-student", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h2>New Student</h2>")
	assertNoAlert(t, w.Body.String())
}

// --- New ---

func TestNew_Success(t *testing.T) {
	fs := &fakeStorage{}
	w := post(t, New(fs, templates.MustNew()), "/new-student",
		url.Values{"name": {"Ann"}, "email": {"a@x.com"}, "age": {"20"}})

	assert.Equal(t, []string{"CreateStudent"}, fs.calls)
	assert.Equal(t, types.StudentInput{Name: "Ann", Email: "a@x.com", Age: 20}, fs.input)
	assertAlert(t, w.Body.String(), MsgCreated)
}

func TestNew_StorageFailure(t *testing.T) {
	fs := &fakeStorage{err: errAPI}
	w := post(t, New(fs, templates.MustNew()), "/new-student",
		url.Values{"name": {"Ann"}, "email": {"a@x.com"}, "age": {"20"}})

	assert.Equal(t, []string{"CreateStudent"}, fs.calls)
	assertAlert(t, w.Body.String(), MsgCreateFailed)
	// The form keeps what the user typed.
	assert.Contains(t, w.Body.String(), `value="Ann"`)
}

func TestNew_AgeZeroIsSubmitted(t *testing.T) {
	fs := &fakeStorage{}
	w := post(t, New(fs, templates.MustNew()), "/new-student",
		url.Values{"name": {"Ann"}, "email": {"a@x.com"}, "age": {"0"}})

	assert.Equal(t, []string{"CreateStudent"}, fs.calls)
	assert.Equal(t, types.StudentInput{Name: "Ann", Email: "a@x.com", Age: 0}, fs.input)
	assertAlert(t, w.Body.String(), MsgCreated)
}

func TestNew_MissingFieldMakesNoCall(t *testing.T) {
	for _, form := range []url.Values{
		{"email": {"a@x.com"}, "age": {"20"}},
		{"name": {"Ann"}, "age": {"20"}},
		{"name": {"Ann"}, "email": {"a@x.com"}},
		{"name": {"Ann"}, "email": {"a@x.com"}, "age": {"   "}},
		{"name": {"Ann"}, "email": {"a@x.com"}, "age": {"twenty"}},
	} {
		fs := &fakeStorage{}
		w := post(t, New(fs, templates.MustNew()), "/new-student", form)

		assert.Empty(t, fs.calls, form.Encode())
		assertAlert(t, w.Body.String(), MsgCreateFailed)
	}
}

// --- GetByID ---

func TestGetByID_Success(t *testing.T) {
	fs := &fakeStorage{student: types.Student{ID: 1, Name: "Ann", Email: "a@x.com", Age: 20}}
	w := post(t, GetByID(fs, templates.MustNew()), "/get-by-id", url.Values{"age": {"20"}})

	assert.Equal(t, []string{"GetStudent"}, fs.calls)
	assert.Equal(t, []string{"20"}, fs.keys)

	body := w.Body.String()
	assert.Contains(t, body, "<p>Name: Ann</p>")
	assert.Contains(t, body, "<p>Email: a@x.com</p>")
	assert.Contains(t, body, "<p>Age: 20</p>")
	assertNoAlert(t, body)
}

func TestGetByID_Failure(t *testing.T) {
	fs := &fakeStorage{err: errAPI, student: types.Student{Name: "Ann"}}
	w := post(t, GetByID(fs, templates.MustNew()), "/get-by-id", url.Values{"age": {"20"}})

	body := w.Body.String()
	assertAlert(t, body, MsgFetchFailed)
	assert.NotContains(t, body, "<p>Name:")
}

// --- GetList ---

func TestGetList_Success(t *testing.T) {
	fs := &fakeStorage{students: []types.Student{
		{ID: 1, Name: "Ann", Email: "a@x.com", Age: 20},
		{ID: 2, Name: "Bob", Email: "b@x.com", Age: 21},
	}}
	w := post(t, GetList(fs, templates.MustNew()), "/get-all", nil)

	assert.Equal(t, []string{"GetStudents"}, fs.calls)

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "<li "))
	assert.Contains(t, body, `<li id="student-1">Ann - a@x.com - 20</li>`)
	assert.Contains(t, body, `<li id="student-2">Bob - b@x.com - 21</li>`)
	assertNoAlert(t, body)
}

func TestGetList_Empty(t *testing.T) {
	fs := &fakeStorage{students: []types.Student{}}
	w := post(t, GetList(fs, templates.MustNew()), "/get-all", nil)

	body := w.Body.String()
	assert.NotContains(t, body, "<li")
	assert.NotContains(t, body, "<ul>")
	assertNoAlert(t, body)
}

func TestGetList_Failure(t *testing.T) {
	fs := &fakeStorage{err: errAPI}
	w := post(t, GetList(fs, templates.MustNew()), "/get-all", nil)

	body := w.Body.String()
	assertAlert(t, body, MsgFetchAllFailed)
	assert.NotContains(t, body, "<li")
}

// --- Delete ---

func TestDelete_Success(t *testing.T) {
	fs := &fakeStorage{}
	w := post(t, Delete(fs, templates.MustNew()), "/delete-by-id", url.Values{"id": {"5"}})

	assert.Equal(t, []string{"DeleteStudent"}, fs.calls)
	assert.Equal(t, []string{"5"}, fs.keys)
	assertAlert(t, w.Body.String(), MsgDeleted)
}

func TestDelete_Failure(t *testing.T) {
	fs := &fakeStorage{err: errAPI}
	w := post(t, Delete(fs, templates.MustNew()), "/delete-by-id", url.Values{"id": {"5"}})

	assertAlert(t, w.Body.String(), MsgDeleteFailed)
}

// --- DeleteAll ---

func TestDeleteAll_Success(t *testing.T) {
	fs := &fakeStorage{}
	w := post(t, DeleteAll(fs, templates.MustNew()), "/delete-all", nil)

	assert.Equal(t, []string{"DeleteStudents"}, fs.calls)
	assertAlert(t, w.Body.String(), MsgDeletedAll)
}

func TestDeleteAll_Failure(t *testing.T) {
	fs := &fakeStorage{err: errAPI}
	w := post(t, DeleteAll(fs, templates.MustNew()), "/delete-all", nil)

	assertAlert(t, w.Body.String(), MsgDeleteAllFailed)
}

// --- Update ---

func TestUpdate_AnySubset(t *testing.T) {
	name, email, age := "Zed", "z@x.com", 31

	tests := []struct {
		name string
		form url.Values
		want types.StudentPatch
	}{
		{"none", url.Values{"id": {"4"}}, types.StudentPatch{}},
		{"name only", url.Values{"id": {"4"}, "name": {"Zed"}}, types.StudentPatch{Name: &name}},
		{"email and age", url.Values{"id": {"4"}, "email": {"z@x.com"}, "age": {"31"}}, types.StudentPatch{Email: &email, Age: &age}},
		{"all", url.Values{"id": {"4"}, "name": {"Zed"}, "email": {"z@x.com"}, "age": {"31"}}, types.StudentPatch{Name: &name, Email: &email, Age: &age}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStorage{}
			w := post(t, Update(fs, templates.MustNew()), "/update-by-id", tt.form)

			assert.Equal(t, []string{"UpdateStudent"}, fs.calls)
			assert.Equal(t, []string{"4"}, fs.keys)
			assert.Equal(t, tt.want, fs.patch)
			assertAlert(t, w.Body.String(), MsgUpdated)
		})
	}
}

func TestUpdate_Failure(t *testing.T) {
	fs := &fakeStorage{err: errAPI}
	w := post(t, Update(fs, templates.MustNew()), "/update-by-id", url.Values{"id": {"4"}, "name": {"Zed"}})

	assertAlert(t, w.Body.String(), MsgUpdateFailed)
}

func TestUpdate_BadAgeMakesNoCall(t *testing.T) {
	fs := &fakeStorage{}
	w := post(t, Update(fs, templates.MustNew()), "/update-by-id", url.Values{"id": {"4"}, "age": {"old"}})

	assert.Empty(t, fs.calls)
	assertAlert(t, w.Body.String(), MsgUpdateFailed)
}
