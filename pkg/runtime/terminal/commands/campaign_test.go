package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedMutate struct {
	mutate   func(customerID, service string, operations []ads.Operation) ([]ads.MutateResult, error)
	upload   func(customerID string, conversions []ads.ClickConversion) ([]ads.MutateResult, error)
	schedule func(resourceName string) error
}

func (m scriptedMutate) Mutate(_ context.Context, customerID, service string, operations []ads.Operation) ([]ads.MutateResult, error) {
	return m.mutate(customerID, service, operations)
}

func (m scriptedMutate) UploadClickConversions(_ context.Context, customerID string, conversions []ads.ClickConversion) ([]ads.MutateResult, error) {
	return m.upload(customerID, conversions)
}

func (m scriptedMutate) ScheduleExperiment(_ context.Context, resourceName string) error {
	return m.schedule(resourceName)
}

func TestCampaignCreateCmd(t *testing.T) {
	var out bytes.Buffer
	var services []string

	deps := Deps{
		Output: &out,
		Clients: scriptedFactory{mutate: scriptedMutate{
			mutate: func(customerID, service string, operations []ads.Operation) ([]ads.MutateResult, error) {
				services = append(services, service)
				return []ads.MutateResult{{ResourceName: "customers/123/" + service + "/9"}}, nil
			},
		}},
	}

	cmd := newCampaignCreateCmd(deps)
	cmd.SetArgs([]string{
		"--profile", "profile.yaml",
		"--customer-id", "123",
		"--name", "Spring Sale",
		"--start-date-time", "2025-07-01 00:00:00",
		"--end-date-time", "2025-07-31 23:59:59",
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []string{"campaignBudgets", "campaigns"}, services)
	assert.Contains(t, out.String(), "Created budget customers/123/campaignBudgets/9")
	assert.Contains(t, out.String(), "Created campaign customers/123/campaigns/9")
}

func TestCampaignCreateCmd_EmptyMutateResults(t *testing.T) {
	deps := Deps{
		Output: &bytes.Buffer{},
		Clients: scriptedFactory{mutate: scriptedMutate{
			mutate: func(customerID, service string, operations []ads.Operation) ([]ads.MutateResult, error) {
				return nil, nil
			},
		}},
	}

	cmd := newCampaignCreateCmd(deps)
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{
		"--profile", "profile.yaml",
		"--customer-id", "123",
		"--name", "Spring Sale",
		"--start-date-time", "2025-07-01 00:00:00",
		"--end-date-time", "2025-07-31 23:59:59",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaignBudgets mutate returned no results")
}

func TestCampaignTargetUserListCmd_EmptyMutateResults(t *testing.T) {
	deps := Deps{
		Output: &bytes.Buffer{},
		Clients: scriptedFactory{mutate: scriptedMutate{
			mutate: func(customerID, service string, operations []ads.Operation) ([]ads.MutateResult, error) {
				return []ads.MutateResult{}, nil
			},
		}},
	}

	cmd := newCampaignTargetUserListCmd(deps)
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{
		"--profile", "profile.yaml",
		"--customer-id", "123",
		"--campaign-id", "456",
		"--user-list-id", "789",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaignCriteria mutate returned no results")
}
