package restapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"account_search/internal/domain/entity"
	"account_search/internal/pkg/metrics"
)

var testJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeResolver struct {
	wallet string
	err    error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (string, error) {
	return f.wallet, f.err
}

type fakeSearchService struct {
	gotWallet string
	result    entity.SearchResult
	err       error
}

func (f *fakeSearchService) Search(_ context.Context, wallet string) (entity.SearchResult, error) {
	f.gotWallet = wallet
	return f.result, f.err
}

func newTestRouter(resolver *fakeResolver, svc *fakeSearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(resolver, svc, zap.NewNop())
	return SetupRouter(handler, zap.NewNop())
}

func doSearch(t *testing.T, router *gin.Engine, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search"+query, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchMissingAddress(t *testing.T) {
	router := newTestRouter(&fakeResolver{}, &fakeSearchService{})

	rec := doSearch(t, router, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body APIErrorResponse
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No address provided", body.Error)
}

func TestSearchInvalidAddress(t *testing.T) {
	resolver := &fakeResolver{err: errors.Wrap(entity.ErrInvalidInput, "parse")}
	router := newTestRouter(resolver, &fakeSearchService{})

	rec := doSearch(t, router, "?address=not-a-key")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body APIErrorResponse
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid address provided", body.Error)
}

func TestSearchSuccess(t *testing.T) {
	resolver := &fakeResolver{wallet: "wallet-1"}
	svc := &fakeSearchService{result: entity.SearchResult{
		Accounts: []entity.AccountSummary{{
			Group:        "group-1",
			Address:      "account-1",
			Assets:       100,
			Liabilities:  25,
			HealthFactor: 75,
		}},
	}}
	router := newTestRouter(resolver, svc)

	rec := doSearch(t, router, "?address=wallet-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wallet-1", svc.gotWallet)

	var body APISearchResponse
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Accounts retrieved successfully.", body.StatusMessage)
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, "account-1", body.Accounts[0].Address)
	assert.Empty(t, body.Errors)
}

func TestSearchPartialFailure(t *testing.T) {
	resolver := &fakeResolver{wallet: "wallet-1"}
	svc := &fakeSearchService{result: entity.SearchResult{
		Accounts: []entity.AccountSummary{{Group: "group-1", Address: "account-1"}},
		Errors:   []entity.SearchError{{Group: "group-2", Message: "rpc timeout"}},
	}}
	router := newTestRouter(resolver, svc)

	rec := doSearch(t, router, "?address=wallet-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body APISearchResponse
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Accounts retrieved. Some groups or accounts encountered errors.", body.StatusMessage)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "group-2", body.Errors[0].Group)
}

func TestSearchCountsOnlyGroupFailures(t *testing.T) {
	resolver := &fakeResolver{wallet: "wallet-1"}
	svc := &fakeSearchService{result: entity.SearchResult{
		Accounts: []entity.AccountSummary{{Group: "group-1", Address: "account-1"}},
		Errors: []entity.SearchError{
			{Group: "group-2", Message: "rpc timeout"},
			{Group: "group-1", Account: "account-2", Message: "missing price"},
		},
	}}
	router := newTestRouter(resolver, svc)

	before := testutil.ToFloat64(metrics.GroupFailuresTotal)
	rec := doSearch(t, router, "?address=wallet-1")
	require.Equal(t, http.StatusOK, rec.Code)

	// The account-scoped failure must not count as a group failure.
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GroupFailuresTotal)-before)
}

func TestSearchNoAccounts(t *testing.T) {
	resolver := &fakeResolver{wallet: "wallet-1"}
	svc := &fakeSearchService{result: entity.SearchResult{Accounts: []entity.AccountSummary{}}}
	router := newTestRouter(resolver, svc)

	rec := doSearch(t, router, "?address=wallet-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body APISearchResponse
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No lending accounts found.", body.StatusMessage)
	assert.NotNil(t, body.Accounts)
	assert.Empty(t, body.Accounts)
}

func TestSearchUpstreamUnavailable(t *testing.T) {
	resolver := &fakeResolver{wallet: "wallet-1"}
	svc := &fakeSearchService{
		result: entity.SearchResult{Errors: []entity.SearchError{{Group: "group-1", Message: "rpc down"}}},
		err:    entity.ErrUpstreamUnavailable,
	}
	router := newTestRouter(resolver, svc)

	rec := doSearch(t, router, "?address=wallet-1")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body APIErrorResponse
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Upstream data sources unavailable", body.Error)
	require.Len(t, body.Errors, 1)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeResolver{}, &fakeSearchService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
