package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"social_dashboard/internal/models"
	"social_dashboard/internal/service"
)

var testUser = models.User{
	ID:           7,
	Username:     "alice",
	Email:        "alice@example.com",
	PasswordHash: "$2a$12$secret-hash",
	FullName:     "Alice A",
	DateOfBirth:  "1990-01-02",
}

func TestGetUser(t *testing.T) {
	t.Run("returns profile without password hash", func(t *testing.T) {
		users := &mockUsers{user: testUser}
		s := &service.Service{Authorization: &mockAuth{parseID: 7}, Users: users}
		r := newTestRouter(s, t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodGet, "/user", ""))

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if users.lastID != 7 {
			t.Fatalf("fetched user %d, want the authenticated id 7", users.lastID)
		}
		body := w.Body.String()
		if strings.Contains(body, "secret-hash") || strings.Contains(body, "password") {
			t.Fatalf("password material leaked: %s", body)
		}
		var got models.User
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Username != "alice" || got.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", got)
		}
	})

	t.Run("missing user is 404", func(t *testing.T) {
		users := &mockUsers{err: service.ErrUserNotFound}
		s := &service.Service{Authorization: &mockAuth{parseID: 7}, Users: users}
		r := newTestRouter(s, t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodGet, "/user", ""))

		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
	})
}

func TestUpdateUser(t *testing.T) {
	updated := testUser
	updated.FullName = "New Name"
	users := &mockUsers{user: updated}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Users: users}
	r := newTestRouter(s, t.TempDir())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPut, "/user", `{"fullName":"New Name","dateOfBirth":"1991-02-03"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if users.lastID != 7 || users.lastFullName != "New Name" || users.lastDOB != "1991-02-03" {
		t.Fatalf("unexpected call: id=%d fullName=%q dob=%q", users.lastID, users.lastFullName, users.lastDOB)
	}
}

func TestUploadProfilePic(t *testing.T) {
	t.Run("no file is 400", func(t *testing.T) {
		s := &service.Service{Authorization: &mockAuth{parseID: 7}, Users: &mockUsers{}}
		r := newTestRouter(s, t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, "/upload-profile-pic", ""))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		if m["message"] != "No file uploaded" {
			t.Fatalf("unexpected body: %v", m)
		}
	})

	t.Run("stores the file and records its relative path", func(t *testing.T) {
		uploadsDir := t.TempDir()
		users := &mockUsers{user: testUser}
		s := &service.Service{Authorization: &mockAuth{parseID: 7}, Users: users}
		r := newTestRouter(s, uploadsDir)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(profilePicField, "avatar.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake-png-bytes")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/upload-profile-pic", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer good-token")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}

		// Recorded path is slash-separated, under uploads/, with the
		// original extension.
		if !strings.HasPrefix(users.lastPicPath, "uploads/") || !strings.HasSuffix(users.lastPicPath, ".png") {
			t.Fatalf("unexpected recorded path %q", users.lastPicPath)
		}

		// The file really exists in the uploads dir.
		onDisk := filepath.Join(uploadsDir, strings.TrimPrefix(users.lastPicPath, "uploads/"))
		data, err := os.ReadFile(onDisk)
		if err != nil {
			t.Fatalf("uploaded file not on disk: %v", err)
		}
		if string(data) != "fake-png-bytes" {
			t.Fatalf("uploaded file content mismatch: %q", data)
		}
	})
}
