// Package student contains all HTTP handlers related to the Student
// resource. Same closure/factory shape as the course handlers: the
// service is injected once at route registration, the returned handler
// runs per request.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BehruzDev0000/learning-center/internal/service"
	"github.com/BehruzDev0000/learning-center/internal/types"
	"github.com/BehruzDev0000/learning-center/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// New handles POST /api/v1/students.
//
// Request body (JSON):
//
//	{ "full_name": "Ada L", "email": "ada@example.com",
//	  "phone": "+14155550101", "course_id": 1 }
//
// Responses: 201 with the created student; 400 for body/validation
// problems; 409 when the email or phone is already taken; 404 when the
// referenced course does not exist.
func New(svc *service.Student) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var req types.CreateStudentRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		created, err := svc.Create(r.Context(), req)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Success(http.StatusCreated, created))
	}
}

// GetList handles GET /api/v1/students.
// Returns every student with their course resolved; cache-aside.
func GetList(svc *service.Student) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := svc.List(r.Context())
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Success(http.StatusOK, students))
	}
}

// GetByID handles GET /api/v1/students/{id}.
func GetByID(svc *service.Student) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		student, err := svc.Get(r.Context(), intID)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Success(http.StatusOK, student))
	}
}

// Update handles PUT /api/v1/students/{id}.
// Partial replacement; uniqueness and course-existence checks run only
// for the fields actually submitted.
func Update(svc *service.Student) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var req types.UpdateStudentRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, err := svc.Update(r.Context(), intID, req)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Success(http.StatusOK, updated))
	}
}

// Delete handles DELETE /api/v1/students/{id}.
func Delete(svc *service.Student) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if err := svc.Delete(r.Context(), intID); err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Deleted("student"))
	}
}
