package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/googleapis/google-cloudevents-go/firebase/authdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/focusnest/identity-sync/internal/events"
	"github.com/focusnest/identity-sync/internal/platform/dto"
	sharederrors "github.com/focusnest/identity-sync/internal/platform/errors"
	"github.com/focusnest/identity-sync/internal/profile"
)

type mockClaims struct {
	mock.Mock
}

func (m *mockClaims) SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	return m.Called(ctx, uid, claims).Error(0)
}

type failingRepo struct {
	err error
}

func (f failingRepo) CreateProfile(context.Context, profile.Profile) error {
	return f.err
}

func newRouter(t *testing.T, repo profile.Repository, claims profile.ClaimsWriter) http.Handler {
	t.Helper()
	svc, err := profile.NewService(repo, claims)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	RegisterRoutes(r, svc, logger)
	return r
}

func pushEvent(t *testing.T, h http.Handler, path, eventType, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("ce-specversion", "1.0")
	req.Header.Set("ce-id", "evt-42")
	req.Header.Set("ce-source", "//firebaseauth.googleapis.com/projects/demo")
	req.Header.Set("ce-type", eventType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func documentEvent(before, after string) string {
	doc := func(role string) string {
		if role == "" {
			return `{"name": "projects/demo/databases/(default)/documents/users/u1", "fields": {"email": {"stringValue": "a@x.com"}}}`
		}
		return `{"name": "projects/demo/databases/(default)/documents/users/u1", "fields": {"role": {"stringValue": "` + role + `"}}}`
	}
	return `{"oldValue": ` + doc(before) + `, "value": ` + doc(after) + `}`
}

func TestUserCreated_WritesProfile(t *testing.T) {
	repo := profile.NewMemoryRepository(nil)
	h := newRouter(t, repo, profile.NewMemoryClaims())

	rec := pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/json",
		`{"uid": "u1", "email": "a@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "synced", resp.Status)
	assert.Equal(t, "u1", resp.UserID)

	got, ok := repo.Get("u1")
	require.True(t, ok)
	require.NotNil(t, got.Email)
	assert.Equal(t, "a@x.com", *got.Email)
	assert.Nil(t, got.DisplayName)
	assert.Equal(t, profile.RoleRegular, got.Role)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserCreated_ProtobufAndLooseMetadata(t *testing.T) {
	repo := profile.NewMemoryRepository(nil)
	h := newRouter(t, repo, profile.NewMemoryClaims())

	raw, err := proto.Marshal(&authdata.AuthEventData{Uid: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	rec := pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/protobuf", string(raw))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/json",
		`{"uid": "u2", "metadata": {"createTime": "2020-05-26 10:42:27"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, ok := repo.Get("u1")
	assert.True(t, ok)
	_, ok = repo.Get("u2")
	assert.True(t, ok)
}

func TestUserCreated_RejectsMalformedEvents(t *testing.T) {
	h := newRouter(t, profile.NewMemoryRepository(nil), profile.NewMemoryClaims())

	rec := pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/json", `{"email": "a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = pushEvent(t, h, "/v1/events/users/created", events.TypeFirestoreDocumentUpdated, "application/json", `{"uid": "u1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/events/users/created", strings.NewReader(`{"uid":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "request without CloudEvent attributes")
}

func TestUserCreated_StoreFailureIsReported(t *testing.T) {
	h := newRouter(t, failingRepo{err: status.Error(codes.PermissionDenied, "missing permission")}, profile.NewMemoryClaims())

	rec := pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/json", `{"uid": "u1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp sharederrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sharederrors.CodeInternal, resp.Code)
	assert.Contains(t, resp.Message, "missing permission")
}

func TestUserCreated_UnavailableStore(t *testing.T) {
	h := newRouter(t, failingRepo{err: status.Error(codes.Unavailable, "try later")}, profile.NewMemoryClaims())

	rec := pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/json", `{"uid": "u1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProfileUpdated_SetsClaims(t *testing.T) {
	tests := []struct {
		name       string
		before     string
		after      string
		wantStatus string
		wantRole   string
	}{
		{"promote to staff", "regular", "staff", "claim_set", "staff"},
		{"unknown role collapses", "staff", "admin", "claim_set", "regular"},
		{"unchanged", "staff", "staff", "unchanged", ""},
		{"role absent from both", "", "", "unchanged", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := new(mockClaims)
			if tt.wantRole != "" {
				claims.On("SetCustomUserClaims", mock.Anything, "u1", map[string]interface{}{"role": tt.wantRole}).Return(nil).Once()
			}
			h := newRouter(t, profile.NewMemoryRepository(nil), claims)

			rec := pushEvent(t, h, "/v1/events/users/updated", events.TypeFirestoreDocumentUpdated, "application/json",
				documentEvent(tt.before, tt.after))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp dto.SyncResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantRole, resp.Role)

			claims.AssertExpectations(t)
			if tt.wantRole == "" {
				claims.AssertNotCalled(t, "SetCustomUserClaims", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProfileUpdated_StructuredModeWithoutContentType(t *testing.T) {
	claims := new(mockClaims)
	claims.On("SetCustomUserClaims", mock.Anything, "u1", map[string]interface{}{"role": "staff"}).Return(nil).Once()
	h := newRouter(t, profile.NewMemoryRepository(nil), claims)

	body := `{
		"specversion": "1.0",
		"id": "evt-43",
		"source": "//firestore.googleapis.com/projects/demo/databases/(default)",
		"type": "` + events.TypeFirestoreDocumentUpdated + `",
		"subject": "documents/users/u1",
		"data": ` + documentEvent("regular", "staff") + `
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/events/users/updated", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/cloudevents+json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"claim_set"`)
	claims.AssertExpectations(t)
}

func TestProfileUpdated_MissingImagesIsNoop(t *testing.T) {
	claims := new(mockClaims)
	h := newRouter(t, profile.NewMemoryRepository(nil), claims)

	body := `{"value": {"name": "projects/demo/databases/(default)/documents/users/u1", "fields": {"role": {"stringValue": "staff"}}}}`
	rec := pushEvent(t, h, "/v1/events/users/updated", events.TypeFirestoreDocumentUpdated, "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skipped"`)
	claims.AssertNotCalled(t, "SetCustomUserClaims", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileUpdated_ClaimFailureIsReported(t *testing.T) {
	claims := new(mockClaims)
	claims.On("SetCustomUserClaims", mock.Anything, "u1", map[string]interface{}{"role": "staff"}).
		Return(errors.New("quota exceeded")).Once()
	h := newRouter(t, profile.NewMemoryRepository(nil), claims)

	rec := pushEvent(t, h, "/v1/events/users/updated", events.TypeFirestoreDocumentUpdated, "application/json",
		documentEvent("regular", "staff"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	claims.AssertExpectations(t)
}

func TestProfileUpdated_OtherCollectionRejected(t *testing.T) {
	claims := new(mockClaims)
	h := newRouter(t, profile.NewMemoryRepository(nil), claims)

	body := strings.ReplaceAll(documentEvent("regular", "staff"), "documents/users/u1", "documents/teams/t1")
	rec := pushEvent(t, h, "/v1/events/users/updated", events.TypeFirestoreDocumentUpdated, "application/json", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	claims.AssertNotCalled(t, "SetCustomUserClaims", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycle_CreateThenPromote(t *testing.T) {
	repo := profile.NewMemoryRepository(nil)
	claims := profile.NewMemoryClaims()
	h := newRouter(t, repo, claims)

	rec := pushEvent(t, h, "/v1/events/users/created", events.TypeAuthUserCreated, "application/json", `{"uid": "u1", "email": "a@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = pushEvent(t, h, "/v1/events/users/updated", events.TypeFirestoreDocumentUpdated, "application/json", documentEvent("regular", "staff"))
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok := claims.Claims("u1")
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"role": "staff"}, got)
	assert.Equal(t, 1, repo.Len())
}
