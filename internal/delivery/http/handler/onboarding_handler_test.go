package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository"
	"github.com/ndemidov/tgdating-backend/internal/usecase/onboarding"
)

type fakeSessionRepo struct {
	sessions map[int64]*domain.OnboardingSession
}

func (f *fakeSessionRepo) Get(_ context.Context, userID int64) (*domain.OnboardingSession, error) {
	s, ok := f.sessions[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, userID int64, session *domain.OnboardingSession) error {
	copied := *session
	f.sessions[userID] = &copied
	return nil
}

func (f *fakeSessionRepo) Clear(_ context.Context, userID int64) error {
	delete(f.sessions, userID)
	return nil
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) Create(_ context.Context, userID int64) (*domain.Profile, error) {
	return &domain.Profile{UserID: userID}, nil
}

func (fakeProfileRepo) GetByUserID(context.Context, int64) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (fakeProfileRepo) ApplyOnboarding(_ context.Context, userID int64, _ *domain.OnboardingData) (*domain.Profile, error) {
	return &domain.Profile{UserID: userID}, nil
}

func (fakeProfileRepo) Update(context.Context, int64, *repository.ProfileUpdate) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (fakeProfileRepo) SetComplete(context.Context, int64, bool) error { return nil }

func (fakeProfileRepo) ListCandidates(context.Context, repository.CandidateFilter) ([]*domain.Profile, error) {
	return nil, nil
}

func (fakeProfileRepo) ListByUserIDs(context.Context, []int64) ([]*domain.Profile, error) {
	return nil, nil
}

const testUserID int64 = 777

func newOnboardingRouter(sessions *fakeSessionRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := onboarding.NewOnboardingUseCase(
		sessions,
		fakeProfileRepo{},
		onboarding.Options{PhotoRequired: true},
		logger.NewNop(),
	)
	h := NewOnboardingHandler(uc)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", testUserID) })
	r.POST("/onboarding/advance", h.Advance)
	return r
}

func postAdvance(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/onboarding/advance", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// An empty answer is still an answer: the state machine must respond
// with its per-state re-prompt instead of a generic body rejection.
func TestAdvanceEmptyInputReprompts(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.OnboardingSession{
		testUserID: {State: domain.StateName},
	}}
	r := newOnboardingRouter(sessions)

	for _, body := range []string{`{"input":""}`, `{}`} {
		w := postAdvance(t, r, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)

		var resp struct {
			Error  string `json:"error"`
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation", resp.Error, "body %s", body)
		assert.Equal(t, "Please tell me your name:", resp.Prompt, "body %s", body)
	}

	// The session stays where it was.
	assert.Equal(t, domain.StateName, sessions.sessions[testUserID].State)
}

func TestAdvanceValidInput(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.OnboardingSession{
		testUserID: {State: domain.StateName},
	}}
	r := newOnboardingRouter(sessions)

	w := postAdvance(t, r, `{"input":"Alice"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Prompt string                 `json:"prompt"`
		State  domain.OnboardingState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.StateAge, resp.State)
	assert.Contains(t, resp.Prompt, "Alice")
}

func TestAdvanceWithoutSession(t *testing.T) {
	r := newOnboardingRouter(&fakeSessionRepo{sessions: map[int64]*domain.OnboardingSession{}})

	w := postAdvance(t, r, `{"input":"Alice"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no active session", resp.Error)
}
