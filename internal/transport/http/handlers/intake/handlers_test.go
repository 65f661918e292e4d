package intakehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"hrmintake/internal/domain/intake"
)

type fakeStore struct {
	inserts []intake.Submission
	nextID  int64
	err     error
}

func (f *fakeStore) InsertSubmission(ctx context.Context, sub intake.Submission) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserts = append(f.inserts, sub)
	return f.nextID, nil
}

type fakeUploader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://cdn.example.com/%s", data), nil
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestRouter(store *fakeStore, uploader *fakeUploader) http.Handler {
	router := chi.NewRouter()
	NewHandler(store, uploader).RegisterRoutes(router)
	return router
}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody(t *testing.T) *multipartBody {
	t.Helper()
	body := &multipartBody{}
	body.writer = multipart.NewWriter(&body.buf)
	return body
}

func (b *multipartBody) field(t *testing.T, name, value string) *multipartBody {
	t.Helper()
	if err := b.writer.WriteField(name, value); err != nil {
		t.Fatalf("write field %s: %v", name, err)
	}
	return b
}

func (b *multipartBody) file(t *testing.T, name, content string) *multipartBody {
	t.Helper()
	part, err := b.writer.CreateFormFile(name, name+".jpg")
	if err != nil {
		t.Fatalf("create file %s: %v", name, err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write file %s: %v", name, err)
	}
	return b
}

func (b *multipartBody) request(t *testing.T) *http.Request {
	t.Helper()
	if err := b.writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/hrminfo", &b.buf)
	req.Header.Set("Content-Type", b.writer.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestSubmitRejectsEmptyTextFieldSet(t *testing.T) {
	store := &fakeStore{nextID: 1}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	// a lone attachment with no text fields still counts as an empty payload
	req := newMultipartBody(t).file(t, "staffPhoto", "jpegbytes").request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Error == "" {
		t.Fatal("expected error message")
	}
	if uploader.callCount() != 0 {
		t.Fatal("expected no upload attempt for rejected request")
	}
	if len(store.inserts) != 0 {
		t.Fatal("expected no insert for rejected request")
	}
}

func TestSubmitTextFieldsOnly(t *testing.T) {
	store := &fakeStore{nextID: 42}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	req := newMultipartBody(t).
		field(t, "fullName", "Nguyen Van A").
		field(t, "dob", "5/3/1990").
		field(t, "joinInternalGroup", "Yes").
		field(t, "confirm", "true").
		request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success          bool    `json:"success"`
		Message          string  `json:"message"`
		ID               int64   `json:"id"`
		StaffPhotoPath   *string `json:"staffPhotoPath"`
		CitizenFrontPath *string `json:"citizenFrontPath"`
		CitizenBackPath  *string `json:"citizenBackPath"`
	}
	decodeJSON(t, rec, &resp)

	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if resp.ID != 42 {
		t.Fatalf("expected id 42, got %d", resp.ID)
	}
	if resp.StaffPhotoPath != nil || resp.CitizenFrontPath != nil || resp.CitizenBackPath != nil {
		t.Fatal("expected all three image paths to be null")
	}
	if uploader.callCount() != 0 {
		t.Fatal("expected no upload calls without attachments")
	}
	if len(store.inserts) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(store.inserts))
	}

	sub := store.inserts[0]
	if sub.DateOfBirth == nil || *sub.DateOfBirth != "1990-03-05" {
		t.Fatal("expected normalized date of birth in the inserted row")
	}
	if sub.JoinInternalGroup != 1 {
		t.Fatal("expected join flag encoded as 1")
	}
	if sub.Confirm != "1" {
		t.Fatal("expected confirm flag encoded as '1'")
	}
	if sub.StaffPhotoURL != nil || sub.CitizenFrontURL != nil || sub.CitizenBackURL != nil {
		t.Fatal("expected all three image columns null")
	}
}

func TestSubmitUploadsAllThreeAttachments(t *testing.T) {
	store := &fakeStore{nextID: 7}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	req := newMultipartBody(t).
		field(t, "fullName", "B").
		file(t, "staffPhoto", "photo").
		file(t, "citizenFront", "front").
		file(t, "citizenBack", "back").
		request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if uploader.callCount() != 3 {
		t.Fatalf("expected 3 uploads, got %d", uploader.callCount())
	}
	if len(store.inserts) != 1 {
		t.Fatalf("expected one insert, got %d", len(store.inserts))
	}

	sub := store.inserts[0]
	if sub.StaffPhotoURL == nil || *sub.StaffPhotoURL != "https://cdn.example.com/photo" {
		t.Fatal("expected staff photo URL from the upload call")
	}
	if sub.CitizenFrontURL == nil || *sub.CitizenFrontURL != "https://cdn.example.com/front" {
		t.Fatal("expected citizen front URL from the upload call")
	}
	if sub.CitizenBackURL == nil || *sub.CitizenBackURL != "https://cdn.example.com/back" {
		t.Fatal("expected citizen back URL from the upload call")
	}

	var resp struct {
		StaffPhotoPath   *string `json:"staffPhotoPath"`
		CitizenFrontPath *string `json:"citizenFrontPath"`
		CitizenBackPath  *string `json:"citizenBackPath"`
	}
	decodeJSON(t, rec, &resp)
	if resp.StaffPhotoPath == nil || *resp.StaffPhotoPath != "https://cdn.example.com/photo" {
		t.Fatal("expected staff photo URL in the acknowledgment")
	}
}

func TestSubmitPartialAttachments(t *testing.T) {
	store := &fakeStore{nextID: 9}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	req := newMultipartBody(t).
		field(t, "fullName", "C").
		file(t, "citizenFront", "front").
		request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if uploader.callCount() != 1 {
		t.Fatalf("expected 1 upload, got %d", uploader.callCount())
	}
	sub := store.inserts[0]
	if sub.StaffPhotoURL != nil || sub.CitizenBackURL != nil {
		t.Fatal("expected missing attachments to stay null")
	}
	if sub.CitizenFrontURL == nil {
		t.Fatal("expected citizen front URL to be set")
	}
}

func TestSubmitSkipsEmptyAttachment(t *testing.T) {
	store := &fakeStore{nextID: 3}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	req := newMultipartBody(t).
		field(t, "fullName", "G").
		file(t, "staffPhoto", "").
		request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if uploader.callCount() != 0 {
		t.Fatal("expected zero-byte attachment to be skipped")
	}
	if store.inserts[0].StaffPhotoURL != nil {
		t.Fatal("expected staff photo column to stay null")
	}
}

func TestSubmitUploadFailureAbortsRequest(t *testing.T) {
	store := &fakeStore{nextID: 5}
	uploader := &fakeUploader{err: errors.New("storage unavailable")}
	router := newTestRouter(store, uploader)

	req := newMultipartBody(t).
		field(t, "fullName", "D").
		file(t, "staffPhoto", "photo").
		request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Error == "" {
		t.Fatal("expected upload error message surfaced")
	}
	if len(store.inserts) != 0 {
		t.Fatal("expected no insert after upload failure")
	}
}

func TestSubmitInsertFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	req := newMultipartBody(t).field(t, "fullName", "E").request(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSubmitNonMultipartBody(t *testing.T) {
	store := &fakeStore{nextID: 1}
	uploader := &fakeUploader{}
	router := newTestRouter(store, uploader)

	req := httptest.NewRequest(http.MethodPost, "/hrminfo", bytes.NewBufferString(`{"fullName":"F"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(store.inserts) != 0 {
		t.Fatal("expected no insert for non-multipart request")
	}
}

func TestPreflightRoute(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeUploader{})

	req := httptest.NewRequest(http.MethodOptions, "/hrminfo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
