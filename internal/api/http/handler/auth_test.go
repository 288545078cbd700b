package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/aegis-auth/aegis-server/internal/api/http/context"
	"github.com/aegis-auth/aegis-server/internal/mocks"
	"github.com/aegis-auth/aegis-server/internal/model"
	"github.com/aegis-auth/aegis-server/internal/service"
	"github.com/aegis-auth/aegis-server/internal/testutil"
)

func newHandler(t *testing.T) (*Auth, *mocks.AuthService) {
	t.Helper()
	svc := mocks.NewAuthService(t)
	return NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger()), svc
}

func faceForm(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("face_image", "face.jpg")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAuth_Register(t *testing.T) {
	h, svc := newHandler(t)

	created := model.User{ID: uuid.New(), FirstName: "Ada", Email: "ada@example.com"}
	svc.On("Register", mock.Anything, service.RegisterParams{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Country: "UK", AgreeToTerms: true, Password: "secret",
	}).Return(created, nil)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","country":"UK","agree_to_terms":true,"password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "ada@example.com", resp.Email)
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	h, svc := newHandler(t)

	svc.On("Register", mock.Anything, mock.Anything).Return(model.User{}, model.ErrDuplicateEmail)

	body := `{"email":"taken@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuth_Register_BadBody(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Login(t *testing.T) {
	h, svc := newHandler(t)

	svc.On("Login", mock.Anything, "ada@example.com", "secret").Return("signed-token", nil)

	body := `{"email":"ada@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	h, svc := newHandler(t)

	svc.On("Login", mock.Anything, "ada@example.com", "wrong").Return("", model.ErrInvalidCredentials)

	body := `{"email":"ada@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrInvalidCredentials.Error(), resp.Error)
}

func TestAuth_RegisterFace(t *testing.T) {
	h, svc := newHandler(t)

	created := model.User{ID: uuid.New(), Email: "ada@example.com", FaceEncoding: []float64{0.1}}
	svc.On("RegisterWithFace", mock.Anything, mock.MatchedBy(func(p service.RegisterFaceParams) bool {
		return p.Email == "ada@example.com" && p.AgreeToTerms && string(p.Image) == "jpeg-bytes"
	})).Return(created, nil)

	body, contentType := faceForm(t, map[string]string{
		"first_name":     "Ada",
		"last_name":      "Lovelace",
		"email":          "ada@example.com",
		"password":       "secret",
		"country":        "UK",
		"agree_to_terms": "true",
	}, []byte("jpeg-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/auth/register-face", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.RegisterFace(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.FaceEnrolled)
}

func TestAuth_RegisterFace_MissingImage(t *testing.T) {
	h, _ := newHandler(t)

	body, contentType := faceForm(t, map[string]string{"email": "ada@example.com"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/register-face", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.RegisterFace(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_RegisterFace_NoFaceDetected(t *testing.T) {
	h, svc := newHandler(t)

	svc.On("RegisterWithFace", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNoFaceDetected)

	body, contentType := faceForm(t, map[string]string{"email": "ada@example.com", "agree_to_terms": "true"}, []byte("no-face"))

	req := httptest.NewRequest(http.MethodPost, "/auth/register-face", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.RegisterFace(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrNoFaceDetected.Error(), resp.Error)
}

func TestAuth_LoginFace(t *testing.T) {
	h, svc := newHandler(t)

	svc.On("LoginWithFace", mock.Anything, []byte("jpeg-bytes")).Return("signed-token", nil)

	body, contentType := faceForm(t, nil, []byte("jpeg-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/auth/login-face", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.LoginFace(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.AccessToken)
}

func TestAuth_LoginFace_NoMatch(t *testing.T) {
	h, svc := newHandler(t)

	svc.On("LoginWithFace", mock.Anything, mock.Anything).Return("", model.ErrNoFaceMatch)

	body, contentType := faceForm(t, nil, []byte("stranger"))

	req := httptest.NewRequest(http.MethodPost, "/auth/login-face", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.LoginFace(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Me(t *testing.T) {
	h, svc := newHandler(t)
	ctxMgr := httpctx.NewManager()

	userID := uuid.New()
	svc.On("GetUser", mock.Anything, userID).Return(model.User{ID: userID, Email: "ada@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(ctxMgr.SetUserIDToContext(req.Context(), userID))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.ID)
}

func TestAuth_Photo(t *testing.T) {
	h, svc := newHandler(t)
	ctxMgr := httpctx.NewManager()

	userID := uuid.New()
	svc.On("EnrollmentPhoto", mock.Anything, userID).
		Return(io.NopCloser(strings.NewReader("jpeg-bytes")), nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me/photo", nil)
	req = req.WithContext(ctxMgr.SetUserIDToContext(req.Context(), userID))
	rec := httptest.NewRecorder()

	h.Photo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}

func TestAuth_Photo_NotEnrolled(t *testing.T) {
	h, svc := newHandler(t)
	ctxMgr := httpctx.NewManager()

	userID := uuid.New()
	svc.On("EnrollmentPhoto", mock.Anything, userID).Return(nil, model.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/auth/me/photo", nil)
	req = req.WithContext(ctxMgr.SetUserIDToContext(req.Context(), userID))
	rec := httptest.NewRecorder()

	h.Photo(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth_Me_NoContext(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
