package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAIMaxCmd_CampaignDetails(t *testing.T) {
	var out bytes.Buffer
	var gotQuery string
	file := filepath.Join(t.TempDir(), "details.csv")

	deps := Deps{
		Output: &out,
		Clients: scriptedFactory{search: func(customerID, query string) (*ads.Stream, error) {
			gotQuery = query
			return streamOf(t, `[{"results":[
				{"campaign":{"id":"991","name":"Brand","aiMaxSetting":{"enableAiMax":true}},
				 "expandedLandingPageView":{"expandedFinalUrl":"https://example.com/landing"}}
			]}]`), nil
		}},
	}

	cmd := newReportAIMaxCmd(deps)
	cmd.SetArgs([]string{
		"--profile", "profile.yaml",
		"--customer-id", "1234567890",
		"--report-type", "campaign_details",
		"--file", file,
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t,
		"SELECT campaign.id, campaign.name, expanded_landing_page_view.expanded_final_url,"+
			" campaign.ai_max_setting.enable_ai_max FROM expanded_landing_page_view"+
			" WHERE campaign.ai_max_setting.enable_ai_max = TRUE ORDER BY campaign.id",
		gotQuery)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Campaign ID,Campaign Name,Expanded Landing Page URL,AI Max Enabled")
	assert.Contains(t, string(content), "991,Brand,https://example.com/landing,true")
	assert.Contains(t, out.String(), "Results successfully written to "+file)
}

func TestReportAIMaxCmd_SearchTerms(t *testing.T) {
	var gotQuery string
	file := filepath.Join(t.TempDir(), "terms.csv")

	deps := Deps{
		Output: &bytes.Buffer{},
		Clock:  fixedClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
		Clients: scriptedFactory{search: func(customerID, query string) (*ads.Stream, error) {
			gotQuery = query
			return streamOf(t, `[{"results":[
				{"campaign":{"id":"991","name":"Brand"},
				 "aiMaxSearchTermAdCombinationView":{"searchTerm":"running shoes"},
				 "metrics":{"impressions":"120","clicks":"12","costMicros":"5000000","conversions":2.0}}
			]}]`), nil
		}},
	}

	cmd := newReportAIMaxCmd(deps)
	cmd.SetArgs([]string{
		"--profile", "profile.yaml",
		"--customer-id", "1234567890",
		"--report-type", "search_terms",
		"--file", file,
	})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, gotQuery, "FROM ai_max_search_term_ad_combination_view")
	assert.Contains(t, gotQuery, "WHERE segments.date BETWEEN '2025-05-16' AND '2025-06-15'")
	assert.Contains(t, gotQuery, "ORDER BY metrics.impressions DESC")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content),
		"Campaign ID,Campaign Name,Search Term,Impressions,Clicks,Cost (micros),Conversions")
	assert.Contains(t, string(content), "991,Brand,running shoes,120,12,5000000,2")
}

func TestReportAIMaxCmd_UnknownReportType(t *testing.T) {
	deps := Deps{
		Output:  &bytes.Buffer{},
		Clients: scriptedFactory{},
	}

	cmd := newReportAIMaxCmd(deps)
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{
		"--profile", "profile.yaml",
		"--customer-id", "1234567890",
		"--report-type", "landing_pages",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report type "landing_pages"`)
}
