package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/de-tools/ads-atlas/pkg/models/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearchClient struct {
	mock.Mock
}

func (m *mockSearchClient) SearchStream(ctx context.Context, customerID, query string) (*ads.Stream, error) {
	args := m.Called(ctx, customerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ads.Stream), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func streamFrom(t *testing.T, body string) *ads.Stream {
	t.Helper()
	stream, err := ads.NewStream(io.NopCloser(strings.NewReader(body)))
	require.NoError(t, err)
	return stream
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.Nop()
	now, _ := time.Parse("2006-01-02", "2025-06-20")

	campaignQuery := "SELECT campaign.id, campaign.name, metrics.clicks, metrics.impressions," +
		" metrics.cost_micros FROM campaign WHERE segments.date BETWEEN '2025-06-13' AND '2025-06-20'" +
		" ORDER BY metrics.clicks DESC"

	tests := []struct {
		name           string
		path           string
		setupMocks     func(client *mockSearchClient)
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListReports",
			path:           "/api/v1/customers/1234567890/reports",
			setupMocks:     func(client *mockSearchClient) {},
			expectedStatus: http.StatusOK,
			expected: []api.ReportDefinition{
				{Slug: "campaign-performance", Name: "Campaign Performance"},
				{Slug: "ad-group-performance", Name: "Ad Group Performance"},
				{Slug: "keyword-performance", Name: "Keyword Performance"},
			},
			parseResponse: unmarshalResponse[[]api.ReportDefinition](),
		},
		{
			name: "RunReport",
			path: "/api/v1/customers/1234567890/reports/campaign-performance?start=2025-06-13&end=2025-06-20",
			setupMocks: func(client *mockSearchClient) {
				body := `[{"results":[
					{"campaign":{"id":"991","name":"Brand"},
					 "metrics":{"clicks":"42","impressions":"1000","costMicros":"1230000"}},
					{"campaign":{"id":"992","name":"Generic"},
					 "metrics":{"clicks":"7","impressions":"310","costMicros":"98000"}}
				],"requestId":"req-1"}]`
				client.On("SearchStream", mock.Anything, "1234567890", campaignQuery).
					Return(streamFrom(t, body), nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.ReportTable{
				Report:  "campaign-performance",
				Columns: []string{"Campaign ID", "Campaign Name", "Clicks", "Impressions", "Cost (micros)"},
				Rows: [][]string{
					{"991", "Brand", "42", "1000", "1230000"},
					{"992", "Generic", "7", "310", "98000"},
				},
			},
			parseResponse: unmarshalResponse[api.ReportTable](),
		},
		{
			name: "RunReport_DefaultPreset",
			path: "/api/v1/customers/1234567890/reports/campaign-performance",
			setupMocks: func(client *mockSearchClient) {
				// With no explicit dates the last seven days are assumed.
				client.On("SearchStream", mock.Anything, "1234567890",
					mock.MatchedBy(func(q string) bool {
						return strings.Contains(q, "BETWEEN '2025-06-13' AND '2025-06-20'")
					})).
					Return(streamFrom(t, `[]`), nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.ReportTable{
				Report:  "campaign-performance",
				Columns: []string{"Campaign ID", "Campaign Name", "Clicks", "Impressions", "Cost (micros)"},
				Rows:    [][]string{},
			},
			parseResponse: unmarshalResponse[api.ReportTable](),
		},
		{
			name:           "RunReport_UnknownReport",
			path:           "/api/v1/customers/1234567890/reports/nope",
			setupMocks:     func(client *mockSearchClient) {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: `unknown report "nope"`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:           "RunReport_InvalidDate",
			path:           "/api/v1/customers/1234567890/reports/campaign-performance?start=not-a-date&end=2025-06-20",
			setupMocks:     func(client *mockSearchClient) {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: `invalid start date "not-a-date": expected YYYY-MM-DD`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:           "RunReport_InvalidLimit",
			path:           "/api/v1/customers/1234567890/reports/campaign-performance?start=2025-06-13&end=2025-06-20&limit=ten",
			setupMocks:     func(client *mockSearchClient) {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: `invalid limit "ten"`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name: "RunReport_UpstreamFailure",
			path: "/api/v1/customers/1234567890/reports/campaign-performance?start=2025-06-13&end=2025-06-20",
			setupMocks: func(client *mockSearchClient) {
				client.On("SearchStream", mock.Anything, "1234567890", campaignQuery).
					Return(nil, &ads.RequestError{RequestID: "req-9", Status: "PERMISSION_DENIED"})
			},
			expectedStatus: http.StatusBadGateway,
			expected:       api.Error{Error: `request "req-9" failed with status "PERMISSION_DENIED"`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := new(mockSearchClient)
			tc.setupMocks(client)

			webAPI := NewWebAPI(logger, Config{
				Addr: ":8080",
				Dependencies: Dependencies{
					Client: client,
					Clock:  fixedClock{now: now},
				},
			})
			testServer := httptest.NewServer(webAPI.router)
			defer testServer.Close()

			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
			client.AssertExpectations(t)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
