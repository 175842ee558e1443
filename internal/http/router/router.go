// Package router holds the UI's static route table.
//
// Route table (GET shows the form, POST submits it):
//
//	/new-student    create a student
//	/get-by-id      fetch one student (keyed by the "age" input)
//	/get-all        list every student
//	/delete-by-id   delete one student
//	/delete-all     delete every student
//	/update-by-id   update one student
//
// plus GET / (navigation only) and GET /healthz.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/students-ui/internal/http/handlers/student"
	"github.com/aanand-mishra/students-ui/internal/http/templates"
	"github.com/aanand-mishra/students-ui/internal/storage"
	"github.com/aanand-mishra/students-ui/internal/utils/response"
)

// New wires every view to storage.
func New(storage storage.Storage, pages *templates.Renderer) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/", student.Show(pages, templates.Index, "Home"))
	r.Get("/healthz", health)

	r.Get("/new-student", student.Show(pages, templates.NewStudent, "New Student"))
	r.Post("/new-student", student.New(storage, pages))

	r.Get("/get-by-id", student.Show(pages, templates.GetByID, "Get by ID"))
	r.Post("/get-by-id", student.GetByID(storage, pages))

	r.Get("/get-all", student.Show(pages, templates.GetAll, "Get All Students"))
	r.Post("/get-all", student.GetList(storage, pages))

	r.Get("/delete-by-id", student.Show(pages, templates.DeleteByID, "Delete by ID"))
	r.Post("/delete-by-id", student.Delete(storage, pages))

	r.Get("/delete-all", student.Show(pages, templates.DeleteAll, "Delete All Students"))
	r.Post("/delete-all", student.DeleteAll(storage, pages))

	r.Get("/update-by-id", student.Show(pages, templates.UpdateByID, "Update Student by ID"))
	r.Post("/update-by-id", student.Update(storage, pages))

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	_ = response.WriteJSON(w, http.StatusOK, response.OK())
}
