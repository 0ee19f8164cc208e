package handler

import (
	"io"
	"net/http"
	"strconv"

	"coursework_tracker/internal/api/middleware"
	"coursework_tracker/internal/app/service"
	"coursework_tracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	queryService      *service.QueryService
	maxUploadBytes    int64
}

func NewSubmissionHandler(ss *service.SubmissionService, qs *service.QueryService, maxUploadBytes int64) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss, queryService: qs, maxUploadBytes: maxUploadBytes}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.With(middleware.StudentOnly).Post("/", h.createSubmission)
	r.Get("/", h.listSubmissions)
	r.Get("/{submissionID}", h.getSubmission)
}

type submitResponse struct {
	SubmissionID int    `json:"submissionId"`
	Message      string `json:"message"`
}

func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
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
	assignmentID, err := strconv.Atoi(r.FormValue("assignmentId"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "assignmentId must be an integer")
		return
	}

	req := service.SubmitRequest{AssignmentID: assignmentID}
	if file, header, err := r.FormFile("file"); err == nil {
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Failed to read upload: "+readErr.Error())
			return
		}
		req.OriginalName, req.Artifact = header.Filename, data
	}

	submission, err := h.submissionService.Submit(r.Context(), actor, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusAccepted, submitResponse{
		SubmissionID: submission.ID,
		Message:      "Submission queued for grading",
	})
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, h.queryService.Submissions(r.Context(), actor))
}

func (h *SubmissionHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "submissionID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid submission id")
		return
	}

	detail, err := h.queryService.Submission(r.Context(), actor, id)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}
