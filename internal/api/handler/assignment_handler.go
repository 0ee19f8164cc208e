package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"coursework_tracker/internal/api/middleware"
	"coursework_tracker/internal/app/service"
	"coursework_tracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	queryService      *service.QueryService
	maxUploadBytes    int64
}

func NewAssignmentHandler(as *service.AssignmentService, qs *service.QueryService, maxUploadBytes int64) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as, queryService: qs, maxUploadBytes: maxUploadBytes}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.listAssignments)

	r.Group(func(teacher chi.Router) {
		teacher.Use(middleware.TeacherOnly)
		teacher.Post("/", h.createAssignment)
		teacher.Patch("/{assignmentID}", h.updateAssignment)
		teacher.Delete("/{assignmentID}", h.deleteAssignment)
	})
}

func (h *AssignmentHandler) listAssignments(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.queryService.Assignments(r.Context()))
}

func (h *AssignmentHandler) createAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload: "+err.Error())
		return
	}

	req := service.CreateAssignmentRequest{
		Title:       r.FormValue("title"),
		Slug:        r.FormValue("slug"),
		Description: r.FormValue("description"),
		Details:     formDetails(r),
	}
	if file, header, err := r.FormFile("fixture"); err == nil {
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Failed to read fixture: "+readErr.Error())
			return
		}
		req.Fixture = &service.FixtureUpload{Name: header.Filename, Data: data}
	}

	assignment, err := h.assignmentService.Create(r.Context(), actor, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, assignment)
}

func (h *AssignmentHandler) updateAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}

	var req service.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	assignment, err := h.assignmentService.Update(r.Context(), actor, id, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}

	if err := h.assignmentService.Delete(r.Context(), actor, id); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Assignment deleted"})
}

// formDetails accepts both "details[]" and repeated "details" fields.
func formDetails(r *http.Request) []string {
	var details []string
	for _, key := range []string{"details[]", "details"} {
		for _, v := range r.MultipartForm.Value[key] {
			if v != "" {
				details = append(details, v)
			}
		}
	}
	return details
}
