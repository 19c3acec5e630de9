package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marmos91/pixvault/pkg/auth"
	"github.com/marmos91/pixvault/pkg/drive"
	driveMemory "github.com/marmos91/pixvault/pkg/drive/memory"
	objectsMemory "github.com/marmos91/pixvault/pkg/objectstore/memory"
)

// testEnv bundles a server with direct access to its backing stores.
type testEnv struct {
	server  *Server
	objects *objectsMemory.MemoryObjectStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := driveMemory.NewMemoryStore(drive.StoreOptions{})
	t.Cleanup(func() { _ = store.Close() })

	objects := objectsMemory.NewMemoryObjectStore()

	srv := New(Config{
		Store:      store,
		Objects:    objects,
		Tokens:     auth.NewTokenManager("server-test-secret", time.Hour),
		BcryptCost: 4, // keep password hashing fast in tests
	})

	return &testEnv{server: srv, objects: objects}
}

// request performs a JSON request against the app, optionally authenticated.
func (e *testEnv) request(t *testing.T, method, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", sessionCookie+"="+cookie)
	}

	resp, err := e.server.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode unmarshals a JSON response body into a map.
func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// sessionOf extracts the session cookie from a register/login response.
func sessionOf(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			require.True(t, c.HttpOnly, "session cookie must be http-only")
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

// registerUser creates an account and returns its session token.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "correct-horse",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return sessionOf(t, resp)
}

// createFolder creates a folder and returns its id.
func (e *testEnv) createFolder(t *testing.T, session, name, parentID string) string {
	t.Helper()

	body := map[string]string{"name": name}
	if parentID != "" {
		body["parentId"] = parentID
	}
	resp := e.request(t, http.MethodPost, "/api/folders", body, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode(t, resp)["id"].(string)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "dup@example.com")

	resp := env.request(t, http.MethodPost, "/api/register", map[string]string{
		"name":     "Second",
		"email":    "dup@example.com",
		"password": "another-pass",
	}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_RejectsInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/register", map[string]string{
		"name":     "No Email",
		"password": "long-enough",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_Flow(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "login@example.com")

	resp := env.request(t, http.MethodPost, "/api/login", map[string]string{
		"email":    "login@example.com",
		"password": "correct-horse",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session := sessionOf(t, resp)
	require.NotEmpty(t, session)

	// Wrong password and unknown email get the same answer
	resp = env.request(t, http.MethodPost, "/api/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "correct-horse",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDriveRoutes_RequireSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/dashboard", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/dashboard", nil, "garbage-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateFolder_MaterializesNestedPath(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "paths@example.com")

	resp := env.request(t, http.MethodPost, "/api/folders", map[string]string{"name": "photos"}, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	root := decode(t, resp)
	require.Equal(t, "/photos", root["path"])

	resp = env.request(t, http.MethodPost, "/api/folders", map[string]string{
		"name":     "2024",
		"parentId": root["id"].(string),
	}, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "/photos/2024", decode(t, resp)["path"])
}

func TestCreateFolder_MissingParentIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "orphan@example.com")

	resp := env.request(t, http.MethodPost, "/api/folders", map[string]string{
		"name":     "lost",
		"parentId": "6a6a3a40-54a3-4e2f-9c4b-000000000001",
	}, session)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboard_NestsFoldersAndImages(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "tree@example.com")

	parentID := env.createFolder(t, session, "photos", "")
	childID := env.createFolder(t, session, "2024", parentID)

	resp := env.request(t, http.MethodPost, "/api/files", map[string]string{
		"name":        "cat.jpg",
		"externalRef": "objects/cat",
		"url":         "https://images.example.com/objects/cat",
		"folderId":    childID,
	}, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/dashboard", nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.Equal(t, "Test User", body["name"])

	items := body["items"].([]any)
	require.Len(t, items, 1)

	photos := items[0].(map[string]any)
	require.Equal(t, "photos", photos["name"])
	require.Equal(t, "folder", photos["type"])

	children := photos["children"].([]any)
	require.Len(t, children, 1)
	year := children[0].(map[string]any)
	require.Equal(t, "2024", year["name"])

	images := year["children"].([]any)
	require.Len(t, images, 1)
	cat := images[0].(map[string]any)
	require.Equal(t, "cat.jpg", cat["name"])
	require.Equal(t, "image", cat["type"])
	require.Equal(t, "https://images.example.com/objects/cat", cat["url"])
}

func TestDashboard_EmptyDrive(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "empty@example.com")

	resp := env.request(t, http.MethodGet, "/api/dashboard", nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.NotNil(t, body["items"])
	require.Empty(t, body["items"])
}

func TestUploadFile_StoresObjectAndRecord(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "upload@example.com")
	folderID := env.createFolder(t, session, "inbox", "")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "holiday.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("folderId", folderID))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Cookie", sessionCookie+"="+session)

	resp, err := env.server.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	file := decode(t, resp)
	require.Equal(t, "holiday.png", file["name"])
	require.NotEmpty(t, file["externalRef"])
	require.NotEmpty(t, file["url"])
	require.Equal(t, 1, env.objects.Len())

	data, ok := env.objects.Get(file["externalRef"].(string))
	require.True(t, ok)
	require.Equal(t, []byte("fake png bytes"), data)
}

func TestDeleteFile_ReleasesObject(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "delete@example.com")

	result, err := env.objects.Upload(t.Context(), "cat.jpg", "image/jpeg", []byte("bytes"))
	require.NoError(t, err)

	resp := env.request(t, http.MethodPost, "/api/files", map[string]string{
		"name":        "cat.jpg",
		"externalRef": result.ExternalRef,
		"url":         result.URL,
	}, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	fileID := decode(t, resp)["id"].(string)

	resp = env.request(t, http.MethodDelete, "/api/files/"+fileID, nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 0, env.objects.Len())

	// Deleting again: the record is gone
	resp = env.request(t, http.MethodDelete, "/api/files/"+fileID, nil, session)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteFolder_CascadesAndReleasesObjects(t *testing.T) {
	env := newTestEnv(t)
	session := env.registerUser(t, "cascade@example.com")

	rootID := env.createFolder(t, session, "photos", "")
	childID := env.createFolder(t, session, "2024", rootID)

	for i := 0; i < 3; i++ {
		result, err := env.objects.Upload(t.Context(), fmt.Sprintf("img-%d.jpg", i), "image/jpeg", []byte("x"))
		require.NoError(t, err)

		resp := env.request(t, http.MethodPost, "/api/files", map[string]string{
			"name":        fmt.Sprintf("img-%d.jpg", i),
			"externalRef": result.ExternalRef,
			"url":         result.URL,
			"folderId":    childID,
		}, session)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.request(t, http.MethodDelete, "/api/folders/"+rootID, nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.EqualValues(t, 2, body["foldersRemoved"])
	require.EqualValues(t, 3, body["filesRemoved"])
	require.Equal(t, 0, env.objects.Len(), "cascade must release every object")

	resp = env.request(t, http.MethodGet, "/api/dashboard", nil, session)
	require.Empty(t, decode(t, resp)["items"])
}

func TestDeleteFolder_ForeignFolderIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice@example.com")
	mallory := env.registerUser(t, "mallory@example.com")

	folderID := env.createFolder(t, alice, "private", "")

	resp := env.request(t, http.MethodDelete, "/api/folders/"+folderID, nil, mallory)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The folder is still there for its owner
	resp = env.request(t, http.MethodGet, "/api/dashboard", nil, alice)
	require.Len(t, decode(t, resp)["items"].([]any), 1)
}

func TestLogout_ClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "bye@example.com")

	resp := env.request(t, http.MethodPost, "/api/logout", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			require.Empty(t, c.Value)
			require.True(t, c.Expires.Before(time.Now()))
			return
		}
	}
	t.Fatal("expected an expired session cookie")
}
