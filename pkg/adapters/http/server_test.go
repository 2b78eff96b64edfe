package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/passage"
	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	svc, err := passage.New(passage.WithHooks(metrics.Hooks()))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return NewHandler(svc, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e domain.ErrorResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	require.NotEmpty(t, e.Error)
	return e.Error
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "Passage API", doc.Info.Title)
	assert.NotNil(t, doc.Components.Schemas["TripRequest"])
}

func TestPostRequirements(t *testing.T) {
	h := newTestHandler(t)

	t.Run("Numeric duration", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements",
			`{"from_country":"China","to_country":"USA","trip_duration":20,"trip_purpose":"business"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var report domain.RequirementReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 7, report.TotalDocuments)
		assert.True(t, report.Summary.VisaNeeded)
		assert.Equal(t, "China", report.TripInfo.FromCountry)
		assert.Equal(t, "Business", report.TripInfo.Purpose)
	})

	t.Run("String duration and default purpose", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements",
			`{"from_country":"canada","to_country":"japan","trip_duration":"10"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var report domain.RequirementReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 10, report.TripInfo.DurationDays)
		assert.Equal(t, "Tourism", report.TripInfo.Purpose)
		assert.False(t, report.Summary.VisaNeeded)
	})

	t.Run("Invalid duration", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements",
			`{"from_country":"Canada","to_country":"Japan","trip_duration":"abc"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error":"invalid trip_duration \"abc\": must be a whole number of days"}`, w.Body.String())
	})

	t.Run("Fractional duration", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements",
			`{"from_country":"Canada","to_country":"Japan","trip_duration":2.5}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeError(t, w), "trip_duration")
	})

	t.Run("Missing field", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements", `{"from_country":"Canada","trip_duration":5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "to_country")
	})

	t.Run("Wrong type", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements", `{"from_country":1,"to_country":"Japan","trip_duration":5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		decodeError(t, w)
	})

	t.Run("Blank country", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements", `{"from_country":"  ","to_country":"Japan","trip_duration":5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		decodeError(t, w)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/requirements", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "invalid request body")
	})
}

func TestGetRequirementsQuery(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/requirements?from_country=India&to_country=Japan&trip_duration=30&trip_purpose=study", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report domain.RequirementReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 8, report.TotalDocuments)
	_, ok := report.Find(domain.DocAcceptanceLetter)
	assert.True(t, ok)

	w = do(t, h, http.MethodGet, "/requirements?from_country=India&to_country=Japan", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "trip_duration")

	w = do(t, h, http.MethodGet, "/requirements?from_country=India&to_country=Japan&trip_duration=0", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeError(t, w), "greater than zero")
}

func TestGetVisaPolicy(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/policies/china/usa", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp VisaPolicyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Listed)
	assert.Equal(t, "China", resp.FromCountry)
	assert.True(t, resp.Policy.VisaRequired)

	w = do(t, h, http.MethodGet, "/policies/atlantis/usa", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = VisaPolicyResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Listed)
	assert.True(t, resp.Policy.VisaRequired)
}

func TestListPolicies(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/policies", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp PoliciesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Policies, 11)
	assert.Contains(t, resp.InsuranceRequired, "schengen")
	assert.Contains(t, resp.HighCost, "japan")
}

func TestOperationalEndpoints(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, strings.TrimSpace(passage.Version), info.Version)
	assert.Equal(t, "1.0.0", info.APIVersion)

	w = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TripRequest")

	w = do(t, h, http.MethodOptions, "/requirements", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	do(t, h, http.MethodPost, "/requirements", `{"from_country":"Canada","to_country":"Japan","trip_duration":5}`)
	do(t, h, http.MethodPost, "/requirements", `{"from_country":"Canada","to_country":"Japan","trip_duration":-1}`)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `outcome="ok"`)
	assert.Contains(t, body, `outcome="invalid"`)
}
