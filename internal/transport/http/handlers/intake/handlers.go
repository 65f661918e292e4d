package intakehandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"hrmintake/internal/domain/intake"
	"hrmintake/internal/transport/http/api"
	"hrmintake/internal/transport/http/middleware"
)

// multipart parts beyond this stay on disk instead of in memory
const maxMultipartMemory = 32 << 20

type SubmissionStore interface {
	InsertSubmission(ctx context.Context, sub intake.Submission) (int64, error)
}

type Handler struct {
	Store    SubmissionStore
	Uploader intake.Uploader
}

func NewHandler(store SubmissionStore, uploader intake.Uploader) *Handler {
	return &Handler{Store: store, Uploader: uploader}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Options("/hrminfo", h.handlePreflight)
	r.Post("/hrminfo", h.handleSubmit)
}

func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type submissionResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	ID               int64   `json:"id"`
	StaffPhotoPath   *string `json:"staffPhotoPath"`
	CitizenFrontPath *string `json:"citizenFrontPath"`
	CitizenBackPath  *string `json:"citizenBackPath"`
}

// handleSubmit runs the whole intake pipeline: validate the text-field set,
// upload whichever attachments were sent, insert one row, acknowledge with
// the generated id and the durable URLs.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		api.Fail(w, http.StatusBadRequest, "no form data received")
		return
	}

	form := r.MultipartForm
	if form == nil || len(form.Value) == 0 {
		api.Fail(w, http.StatusBadRequest, "no form data received")
		return
	}

	sub := intake.FromForm(form.Value)

	// The three uploads are independent, so they run concurrently and join
	// before the insert. Any single failure aborts the request; assets
	// already uploaded for the same request stay orphaned in storage.
	var staffPhotoPath, citizenFrontPath, citizenBackPath *string
	group, ctx := errgroup.WithContext(r.Context())
	uploadSlot := func(field string, dest **string) {
		header := firstFile(form.File[field])
		if header == nil || header.Size == 0 {
			return
		}
		group.Go(func() error {
			url, err := h.uploadAttachment(ctx, header)
			if err != nil {
				return fmt.Errorf("upload %s: %w", field, err)
			}
			*dest = &url
			return nil
		})
	}
	uploadSlot("staffPhoto", &staffPhotoPath)
	uploadSlot("citizenFront", &citizenFrontPath)
	uploadSlot("citizenBack", &citizenBackPath)

	if err := group.Wait(); err != nil {
		slog.Error("attachment upload failed",
			"err", err,
			"requestId", middleware.GetRequestID(r.Context()),
		)
		api.Fail(w, http.StatusInternalServerError, "server error: "+err.Error())
		return
	}

	sub.StaffPhotoURL = staffPhotoPath
	sub.CitizenFrontURL = citizenFrontPath
	sub.CitizenBackURL = citizenBackPath

	id, err := h.Store.InsertSubmission(r.Context(), sub)
	if err != nil {
		slog.Error("submission insert failed",
			"err", err,
			"requestId", middleware.GetRequestID(r.Context()),
		)
		api.Fail(w, http.StatusInternalServerError, "server error: "+err.Error())
		return
	}

	api.WriteJSON(w, http.StatusCreated, submissionResponse{
		Success:          true,
		Message:          "submission saved successfully",
		ID:               id,
		StaffPhotoPath:   staffPhotoPath,
		CitizenFrontPath: citizenFrontPath,
		CitizenBackPath:  citizenBackPath,
	})
}

func (h *Handler) uploadAttachment(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return h.Uploader.Upload(ctx, data)
}

func firstFile(headers []*multipart.FileHeader) *multipart.FileHeader {
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}
