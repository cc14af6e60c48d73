package worms

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

const testBaseURL = "https://worms.test/rest"

func activateMock(t *testing.T, client *Client) {
	t.Helper()
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
}

func TestAphiaRecordByID(t *testing.T) {
	client := newTestClient(t, testBaseURL)
	activateMock(t, client)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/AphiaRecordByAphiaID/145795",
		httpmock.NewStringResponder(http.StatusOK, eelgrassRecordJSON))

	record, err := client.AphiaRecordByID(context.Background(), 145795)
	require.NoError(t, err)

	assert.Equal(t, 145795, record.AphiaID)
	assert.Equal(t, "Zostera marina", record.ScientificName)
	assert.Equal(t, "accepted", record.Status)
	assert.Equal(t, "Plantae", record.Kingdom)
	assert.Equal(t, "Zosteraceae", record.Family)
	assert.Equal(t, "urn:lsid:marinespecies.org:taxname:145795", record.Lsid)
	assert.Equal(t, 1, record.IsMarine)
}

func TestAphiaRecordByIDCaches(t *testing.T) {
	client := newTestClient(t, testBaseURL)
	activateMock(t, client)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/AphiaRecordByAphiaID/145795",
		httpmock.NewStringResponder(http.StatusOK, eelgrassRecordJSON))

	_, err := client.AphiaRecordByID(context.Background(), 145795)
	require.NoError(t, err)
	_, err = client.AphiaRecordByID(context.Background(), 145795)
	require.NoError(t, err)

	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	metrics := client.GetMetrics()
	assert.Equal(t, int64(1), metrics.APICalls)
	assert.Equal(t, int64(1), metrics.CacheHits)
}

func TestAphiaRecordByIDNotFound(t *testing.T) {
	client := newTestClient(t, testBaseURL)
	activateMock(t, client)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/AphiaRecordByAphiaID/999999",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	_, err := client.AphiaRecordByID(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestAphiaRecordByIDServerError(t *testing.T) {
	client := newTestClient(t, testBaseURL)
	activateMock(t, client)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/AphiaRecordByAphiaID/145795",
		httpmock.NewStringResponder(http.StatusInternalServerError, "oops"))

	_, err := client.AphiaRecordByID(context.Background(), 145795)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryNetwork))

	// no retry: exactly one request went out
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestAphiaRecordByIDMalformedResponse(t *testing.T) {
	client := newTestClient(t, testBaseURL)
	activateMock(t, client)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/AphiaRecordByAphiaID/145795",
		httpmock.NewStringResponder(http.StatusOK, "<html>not json</html>"))

	_, err := client.AphiaRecordByID(context.Background(), 145795)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileParsing))
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, DefaultConfig().BaseURL, client.config.BaseURL)
	assert.Equal(t, DefaultConfig().Timeout, client.config.Timeout)
	assert.Equal(t, DefaultConfig().RateLimitMS, client.config.RateLimitMS)
}
