package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/require"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
	"github.com/notetutor/notetutor/store/db/sqlite"
)

func newTestService(t *testing.T) (*APIV1Service, *echo.Echo) {
	t.Helper()
	p := &profile.Profile{Mode: "dev", Data: t.TempDir(), Driver: "sqlite"}
	require.NoError(t, p.Validate())

	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })

	svc := NewAPIV1Service(p, st, nil, nil)
	e := echo.New()
	svc.Register(e)
	return svc, e
}

func putSettings(t *testing.T, e *echo.Echo, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/tutor/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUpdateTutorSetting_ReturnsPersistedRecord(t *testing.T) {
	svc, e := newTestService(t)

	// Blank language and model get defaulted before persisting; the
	// response carries the defaulted record, not the raw request.
	rec := putSettings(t, e, `{"language":"","depth":"short","model":"","temperature":0.3,"maxTokens":50}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got tutorSettingPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, store.DefaultTutorSetting().Language, got.Language)
	require.Equal(t, svc.Profile.Model, got.Model)
	require.Equal(t, "short", got.Depth)
	require.Equal(t, 0.3, got.Temperature)
	require.Equal(t, 50, got.MaxTokens)

	saved, err := svc.Store.GetTutorSetting(context.Background())
	require.NoError(t, err)
	require.Equal(t, got.Language, saved.Language)
	require.Equal(t, got.Model, saved.Model)
	require.Equal(t, got.Temperature, saved.Temperature)
}

func TestUpdateTutorSetting_RejectsOutOfRangeValues(t *testing.T) {
	_, e := newTestService(t)

	rec := putSettings(t, e, `{"language":"RO","depth":"medium","model":"m","temperature":1.5,"maxTokens":50}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = putSettings(t, e, `{"language":"RO","depth":"medium","model":"m","temperature":0.5,"maxTokens":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = putSettings(t, e, `{"language":"RO","depth":"verbose","model":"m","temperature":0.5,"maxTokens":50}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
