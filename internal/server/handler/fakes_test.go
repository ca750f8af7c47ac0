package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rosebudapp/rosebud/internal/server/auth"
	"github.com/rosebudapp/rosebud/internal/server/metrics"
	"github.com/rosebudapp/rosebud/internal/server/models"
)

const testSecret = "router-test-secret"

// Stub services with function fields so each test can pin down exactly the
// behavior it needs. Unset fields panic, which surfaces unexpected calls.

type stubUserService struct {
	register func(ctx context.Context, username, password, name, email string) (*models.User, string, error)
	login    func(ctx context.Context, username, password string) (*models.User, string, error)
	getUser  func(ctx context.Context, id string) (*models.User, error)
}

func (s *stubUserService) Register(ctx context.Context, username, password, name, email string) (*models.User, string, error) {
	return s.register(ctx, username, password, name, email)
}
func (s *stubUserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	return s.login(ctx, username, password)
}
func (s *stubUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, id)
}

type stubEntryService struct {
	create      func(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error)
	update      func(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error)
	delete      func(ctx context.Context, userID, id string) error
	listByUser  func(ctx context.Context, userID string) ([]models.Entry, error)
	listByGroup func(ctx context.Context, userID, groupID string) ([]models.Entry, error)
	listByTag   func(ctx context.Context, userID, tagID string) ([]models.Entry, error)
}

func (s *stubEntryService) Create(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error) {
	return s.create(ctx, userID, entry)
}
func (s *stubEntryService) Update(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error) {
	return s.update(ctx, userID, entry)
}
func (s *stubEntryService) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}
func (s *stubEntryService) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	return s.listByUser(ctx, userID)
}
func (s *stubEntryService) ListByGroup(ctx context.Context, userID, groupID string) ([]models.Entry, error) {
	return s.listByGroup(ctx, userID, groupID)
}
func (s *stubEntryService) ListByTag(ctx context.Context, userID, tagID string) ([]models.Entry, error) {
	return s.listByTag(ctx, userID, tagID)
}

type stubGroupService struct {
	create           func(ctx context.Context, userID, name string) (*models.Group, *models.Membership, error)
	join             func(ctx context.Context, userID, joinCode string) (*models.Group, *models.Membership, error)
	get              func(ctx context.Context, userID, id string) (*models.Group, error)
	listMemberships  func(ctx context.Context, userID string) ([]models.Membership, error)
	listGroupMembers func(ctx context.Context, userID, groupID string) ([]models.Membership, error)
}

func (s *stubGroupService) Create(ctx context.Context, userID, name string) (*models.Group, *models.Membership, error) {
	return s.create(ctx, userID, name)
}
func (s *stubGroupService) Join(ctx context.Context, userID, joinCode string) (*models.Group, *models.Membership, error) {
	return s.join(ctx, userID, joinCode)
}
func (s *stubGroupService) Get(ctx context.Context, userID, id string) (*models.Group, error) {
	return s.get(ctx, userID, id)
}
func (s *stubGroupService) ListMemberships(ctx context.Context, userID string) ([]models.Membership, error) {
	return s.listMemberships(ctx, userID)
}
func (s *stubGroupService) ListGroupMembers(ctx context.Context, userID, groupID string) ([]models.Membership, error) {
	return s.listGroupMembers(ctx, userID, groupID)
}

type stubTagService struct {
	create     func(ctx context.Context, userID, tagName string) (*models.Tag, error)
	listByUser func(ctx context.Context, userID string) ([]models.Tag, error)
	delete     func(ctx context.Context, userID, id string) error
}

func (s *stubTagService) Create(ctx context.Context, userID, tagName string) (*models.Tag, error) {
	return s.create(ctx, userID, tagName)
}
func (s *stubTagService) ListByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	return s.listByUser(ctx, userID)
}
func (s *stubTagService) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}

type stubAttachmentService struct {
	presignPut func(ctx context.Context, userID string) (string, string, error)
	presignGet func(ctx context.Context, key string) (string, error)
}

func (s *stubAttachmentService) GetPresignedPutUrl(ctx context.Context, userID string) (string, string, error) {
	return s.presignPut(ctx, userID)
}
func (s *stubAttachmentService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	return s.presignGet(ctx, key)
}

// newTestRouter mounts the full route table over the given stubs. Rate limits
// are generous so tests never trip them.
func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector(reg)
	}
	deps.Gatherer = reg

	return NewRouter(RouterConfig{SecretKey: testSecret, AuthRPS: 1000, AuthBurst: 1000}, deps)
}

func authHeader(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "127.0.0.1:9999"
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
