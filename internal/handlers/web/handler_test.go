package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/handlers/web"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/strain"
	strainmock "github.com/KirkDiggler/strain-screen/internal/orchestrators/strain/mock"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/viewer"
	viewermock "github.com/KirkDiggler/strain-screen/internal/orchestrators/viewer/mock"
	"github.com/KirkDiggler/strain-screen/internal/pkg/idgen"
	"github.com/KirkDiggler/strain-screen/internal/screen"
	"github.com/KirkDiggler/strain-screen/internal/testutils"
)

const (
	testSettle    = 50 * time.Millisecond
	testSessionID = "sess_1"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockViewer *viewermock.MockService
	mockLoader *strainmock.MockService
	handler    *web.Handler
	params     entities.RouteParams
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockViewer = viewermock.NewMockService(s.ctrl)
	s.mockLoader = strainmock.NewMockService(s.ctrl)
	s.handler = s.newHandler(nil)
	s.params = entities.RouteParams{ID: "42", Name: "Blue Dream", Race: "hybrid"}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) newHandler(checks map[string]web.HealthCheck) *web.Handler {
	h, err := web.NewHandler(&web.HandlerConfig{
		Viewer:          s.mockViewer,
		Loader:          s.mockLoader,
		IDGenerator:     idgen.NewSequential("sess"),
		RefreshInterval: 2 * time.Second,
		SettleTime:      testSettle,
		HealthChecks:    checks,
	})
	s.Require().NoError(err)
	return h
}

func (s *HandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: web.SessionCookie, Value: testSessionID})
	return req
}

func (s *HandlerTestSuite) expectShow(params entities.RouteParams, snap screen.Snapshot) {
	s.mockViewer.EXPECT().
		Show(gomock.Any(), &viewer.ShowInput{
			SessionID: testSessionID,
			Params:    params,
			WaitFor:   testSettle,
		}).
		Return(&viewer.ShowOutput{Snapshot: snap}, nil)
}

func (s *HandlerTestSuite) TestConfigValidation() {
	testCases := []struct {
		name string
		cfg  *web.HandlerConfig
	}{
		{name: "nil config", cfg: nil},
		{name: "missing viewer", cfg: &web.HandlerConfig{Loader: s.mockLoader, IDGenerator: idgen.NewUUID("")}},
		{name: "missing loader", cfg: &web.HandlerConfig{Viewer: s.mockViewer, IDGenerator: idgen.NewUUID("")}},
		{name: "missing id generator", cfg: &web.HandlerConfig{Viewer: s.mockViewer, Loader: s.mockLoader}},
		{
			name: "negative refresh",
			cfg: &web.HandlerConfig{
				Viewer: s.mockViewer, Loader: s.mockLoader, IDGenerator: idgen.NewUUID(""),
				RefreshInterval: -time.Second,
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			h, err := web.NewHandler(tc.cfg)
			s.Error(err)
			s.Nil(h)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *HandlerTestSuite) TestStrainLoadingIssuesSessionAndSpinner() {
	s.expectShow(s.params, screen.Snapshot{
		Params:  s.params,
		Mounted: true,
		Status:  screen.StatusLoading,
	})

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/strain/hybrid/42/Blue%20Dream", nil))
	s.Equal(http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(web.SessionCookie, cookies[0].Name)
	s.Equal(testSessionID, cookies[0].Value)
	s.True(cookies[0].HttpOnly)

	body := rec.Body.String()
	s.Contains(body, `class="spinner"`)
	s.Contains(body, `/static/icons/hybrid.svg`)
	s.Contains(body, `http-equiv="refresh" content="2"`)
	s.NotContains(body, "Medical:")
	s.Equal("no-store", rec.Header().Get("Cache-Control"))
}

func (s *HandlerTestSuite) TestStrainLoaded() {
	view := testutils.CreateTestStrainView()
	s.expectShow(s.params, screen.Snapshot{
		Params:  s.params,
		Mounted: true,
		Status:  screen.StatusLoaded,
		View:    view,
	})

	rec := s.serve(s.withSession(httptest.NewRequest(http.MethodGet, "/strain/hybrid/42/Blue%20Dream", nil)))
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Result().Cookies())

	body := rec.Body.String()
	s.Contains(body, "<p>Hybrid</p>")
	s.Contains(body, "<h1>Blue Dream</h1>")
	s.Contains(body, testutils.TestStrainDesc)
	s.Contains(body, "Earthy, Pine, Sweet")
	s.Contains(body, "Depression, Insomnia, Pain, Stress")
	s.Contains(body, "Relaxed, Sleepy, Happy")
	s.Contains(body, "Dry Mouth, Dry Eyes")
	s.Contains(body, "translateY(5px)")
	s.Contains(body, "translateY(-5px)")
	s.Contains(body, "transition: transform 150ms")
	s.Contains(body, `href="/"`)
	s.NotContains(body, `http-equiv="refresh"`)
	s.NotContains(body, `class="spinner"`)
}

func (s *HandlerTestSuite) TestStrainLoadedWithExtras() {
	view := entities.MergeStrainView("42",
		testutils.CreateTestEffects(),
		entities.Description{"desc": "Sweet berry aroma.", "origin": "California"},
		testutils.CreateTestFlavors(),
	)
	s.expectShow(s.params, screen.Snapshot{Params: s.params, Mounted: true, Status: screen.StatusLoaded, View: view})

	rec := s.serve(s.withSession(httptest.NewRequest(http.MethodGet, "/strain/hybrid/42/Blue%20Dream", nil)))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "origin:")
	s.Contains(rec.Body.String(), "California")
}

func (s *HandlerTestSuite) TestStrainFailed() {
	s.expectShow(s.params, screen.Snapshot{
		Params:       s.params,
		Mounted:      true,
		Status:       screen.StatusFailed,
		ErrorCode:    errors.CodeUnavailable,
		ErrorMessage: "failed to load flavors for strain 42",
	})

	rec := s.serve(s.withSession(httptest.NewRequest(http.MethodGet, "/strain/hybrid/42/Blue%20Dream", nil)))
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	body := rec.Body.String()
	s.Contains(body, "failed to load flavors for strain 42")
	s.Contains(body, `action="/strain/hybrid/42/Blue%20Dream/retry"`)
	s.Contains(body, `data-code="UNAVAILABLE"`)
	s.NotContains(body, "Retrying may not help")
	s.NotContains(body, `class="spinner"`)
}

func (s *HandlerTestSuite) TestStrainViewerError() {
	s.mockViewer.EXPECT().
		Show(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument("strain ID is required"))

	rec := s.serve(s.withSession(httptest.NewRequest(http.MethodGet, "/strain/hybrid/42/Blue%20Dream", nil)))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "strain ID is required")
}

func (s *HandlerTestSuite) TestStrainEncodedSlash() {
	params := entities.RouteParams{ID: "7", Name: "AC/DC", Race: "sativa"}
	s.expectShow(params, screen.Snapshot{Params: params, Mounted: true, Status: screen.StatusLoading})

	rec := s.serve(s.withSession(httptest.NewRequest(http.MethodGet, "/strain/sativa/7/AC%2FDC", nil)))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestRetry() {
	s.Run("reloads mounted screen", func() {
		s.mockViewer.EXPECT().
			Retry(gomock.Any(), &viewer.RetryInput{SessionID: testSessionID}).
			Return(&viewer.RetryOutput{}, nil)

		rec := s.serve(s.withSession(httptest.NewRequest(http.MethodPost, "/strain/hybrid/42/Blue%20Dream/retry", nil)))
		s.Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/strain/hybrid/42/Blue%20Dream", rec.Header().Get("Location"))
	})

	s.Run("no screen falls through to the page", func() {
		s.mockViewer.EXPECT().
			Retry(gomock.Any(), gomock.Any()).
			Return(nil, errors.NotFound("screen not found"))

		rec := s.serve(s.withSession(httptest.NewRequest(http.MethodPost, "/strain/hybrid/42/Blue%20Dream/retry", nil)))
		s.Equal(http.StatusSeeOther, rec.Code)
	})

	s.Run("no session", func() {
		rec := s.serve(httptest.NewRequest(http.MethodPost, "/strain/hybrid/42/Blue%20Dream/retry", nil))
		s.Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/strain/hybrid/42/Blue%20Dream", rec.Header().Get("Location"))
	})
}

func (s *HandlerTestSuite) TestIndexLeavesScreen() {
	s.mockViewer.EXPECT().
		Leave(gomock.Any(), &viewer.LeaveInput{SessionID: testSessionID}).
		Return(&viewer.LeaveOutput{Left: true}, nil)

	rec := s.serve(s.withSession(httptest.NewRequest(http.MethodGet, "/", nil)))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `action="/lookup"`)
	s.Contains(rec.Body.String(), `<option value="indica">`)
}

func (s *HandlerTestSuite) TestIndexWithoutSession() {
	rec := s.serve(httptest.NewRequest(http.MethodGet, "/", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Result().Cookies())
}

func (s *HandlerTestSuite) TestLookup() {
	s.Run("redirects to strain route", func() {
		rec := s.serve(httptest.NewRequest(http.MethodGet, "/lookup?id=42&name=Blue+Dream&race=hybrid", nil))
		s.Equal(http.StatusSeeOther, rec.Code)
		s.Equal("/strain/hybrid/42/Blue%20Dream", rec.Header().Get("Location"))
	})

	s.Run("missing fields", func() {
		rec := s.serve(httptest.NewRequest(http.MethodGet, "/lookup?id=42", nil))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "name: is required")
	})
}

func (s *HandlerTestSuite) TestGetStrainJSON() {
	s.mockLoader.EXPECT().
		LoadStrain(gomock.Any(), &strain.LoadStrainInput{StrainID: testutils.TestStrainID}).
		Return(&strain.LoadStrainOutput{View: testutils.CreateTestStrainView()}, nil)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/strains/"+testutils.TestStrainID, nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var resp web.StrainResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().NotNil(resp.StrainView)
	s.Equal(testutils.TestStrainID, resp.ID)
	s.Equal("Earthy, Pine, Sweet", resp.Flavors)
	s.Equal("Relaxed, Sleepy, Happy", resp.Effects.Positive)
	s.False(resp.FromCache)
	s.Nil(resp.CachedAt)
}

func (s *HandlerTestSuite) TestGetStrainFresh() {
	s.mockLoader.EXPECT().
		LoadStrain(gomock.Any(), &strain.LoadStrainInput{StrainID: testutils.TestStrainID, SkipCache: true}).
		Return(&strain.LoadStrainOutput{View: testutils.CreateTestStrainView()}, nil)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/strains/"+testutils.TestStrainID+"?fresh=true", nil))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/strains/"+testutils.TestStrainID+"?fresh=maybe", nil))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestGetStrainErrors() {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
	}{
		{name: "not found", err: errors.NotFound("strain 404 not found"), wantStatus: http.StatusNotFound, wantCode: errors.CodeNotFound},
		{name: "upstream down", err: errors.Unavailable("strain api returned 503"), wantStatus: http.StatusServiceUnavailable, wantCode: errors.CodeUnavailable},
		{name: "bad payload", err: errors.DataLoss("malformed effects"), wantStatus: http.StatusBadGateway, wantCode: errors.CodeDataLoss},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockLoader.EXPECT().
				LoadStrain(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/strains/404", nil))
			s.Equal(tc.wantStatus, rec.Code)

			var body errors.HTTPBody
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			s.Equal(tc.wantCode, body.Code)
		})
	}
}

func (s *HandlerTestSuite) TestInvalidateStrain() {
	s.mockLoader.EXPECT().
		InvalidateStrain(gomock.Any(), &strain.InvalidateStrainInput{StrainID: testutils.TestStrainID}).
		Return(&strain.InvalidateStrainOutput{Evicted: true}, nil)

	rec := s.serve(httptest.NewRequest(http.MethodDelete, "/api/v1/strains/"+testutils.TestStrainID+"/cache", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"evicted":true}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestHealth() {
	s.Run("no checks", func() {
		rec := s.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"status":"ok"}`, rec.Body.String())
	})

	s.Run("failing check", func() {
		s.handler = s.newHandler(map[string]web.HealthCheck{
			"redis": func(context.Context) error { return errors.Unavailable("connection refused") },
			"self":  func(context.Context) error { return nil },
		})

		rec := s.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
		s.Equal(http.StatusServiceUnavailable, rec.Code)

		var resp web.HealthResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("degraded", resp.Status)
		s.Equal("ok", resp.Checks["self"])
		s.Contains(resp.Checks["redis"], "connection refused")
	})
}

func (s *HandlerTestSuite) TestStaticIcons() {
	for _, race := range []string{"indica", "sativa", "hybrid", "leaf"} {
		s.Run(race, func() {
			rec := s.serve(httptest.NewRequest(http.MethodGet, "/static/icons/"+race+".svg", nil))
			s.Equal(http.StatusOK, rec.Code)
			s.True(strings.HasPrefix(rec.Header().Get("Content-Type"), "image/svg+xml"))
		})
	}
}

func (s *HandlerTestSuite) TestMalformedSessionCookieIsReplaced() {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "path characters", value: "../../etc/passwd"},
		{name: "too long", value: strings.Repeat("a", 65)},
		{name: "spaces", value: "sess 1"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.handler = s.newHandler(nil)
			s.expectShow(s.params, screen.Snapshot{Params: s.params, Mounted: true, Status: screen.StatusLoading})

			req := httptest.NewRequest(http.MethodGet, "/strain/hybrid/42/Blue%20Dream", nil)
			req.AddCookie(&http.Cookie{Name: web.SessionCookie, Value: tc.value})
			rec := s.serve(req)

			s.Equal(http.StatusOK, rec.Code)
			cookies := rec.Result().Cookies()
			s.Require().Len(cookies, 1)
			s.Equal(testSessionID, cookies[0].Value)
		})
	}
}

func (s *HandlerTestSuite) TestRequestLogsUseSlog() {
	var buf bytes.Buffer
	h, err := web.NewHandler(&web.HandlerConfig{
		Viewer:      s.mockViewer,
		Loader:      s.mockLoader,
		IDGenerator: idgen.NewSequential("sess"),
		Logger:      slog.New(slog.NewJSONHandler(&buf, nil)),
	})
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var entry map[string]interface{}
	s.Require().NoError(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	s.Equal("http request", entry["msg"])
	s.Equal("GET", entry["method"])
	s.Equal("/healthz", entry["path"])
	s.Equal(float64(http.StatusOK), entry["status"])
	s.NotEmpty(entry["request_id"])
}
