// Package course contains all HTTP handlers related to the Course resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the service.
// Each factory below accepts the course service once at startup and
// returns a handler that closes over it, e.g.:
//
//	router.HandleFunc("POST /api/v1/courses", course.New(svc))
//
// The handlers own only request shape: decode, structural validation,
// id parsing. Everything domain-shaped — date-range rule, caching,
// invalidation — lives behind the service, and domain errors come back
// typed for the response package to translate.
package course

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

// New handles POST /api/v1/courses.
//
// Request body (JSON):
//
//	{ "name": "Go 101", "description": "Intro course",
//	  "start_date": "2025-09-01", "end_date": "2025-09-30" }
//
// Responses: 201 with the created course; 400 for an empty/malformed
// body, failed field validation, or an invalid date range.
func New(svc *service.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a course")

		var req types.CreateCourseRequest
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

// GetList handles GET /api/v1/courses.
// Returns every course with its enrolled students; served from cache
// when the list was read within the TTL and nothing wrote since.
func GetList(svc *service.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all courses")

		courses, err := svc.List(r.Context())
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Success(http.StatusOK, courses))
	}
}

// GetByID handles GET /api/v1/courses/{id}.
func GetByID(svc *service.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a course", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		course, err := svc.Get(r.Context(), intID)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteEnvelope(w, response.Success(http.StatusOK, course))
	}
}

// Update handles PUT /api/v1/courses/{id}.
// Partial replacement: omitted fields keep their stored values, and the
// date-range rule is enforced against the merged record.
func Update(svc *service.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a course", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var req types.UpdateCourseRequest
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

// Delete handles DELETE /api/v1/courses/{id}.
// Enrolled students are removed by the store's cascade.
func Delete(svc *service.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a course", slog.String("id", id))

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

		response.WriteEnvelope(w, response.Deleted("course"))
	}
}
