package commands

import (
	"io"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/de-tools/ads-atlas/pkg/gaql"
)

// ClientFactory builds platform clients from a credentials profile path.
type ClientFactory interface {
	Search(profilePath string) (ads.SearchClient, error)
	Mutate(profilePath string) (ads.MutateClient, error)
	Accounts(profilePath string) (ads.AccountClient, error)
}

// DefaultClientFactory loads a viper profile and returns the REST client.
type DefaultClientFactory struct{}

func (DefaultClientFactory) Search(profilePath string) (ads.SearchClient, error) {
	return newClient(profilePath)
}

func (DefaultClientFactory) Mutate(profilePath string) (ads.MutateClient, error) {
	return newClient(profilePath)
}

func (DefaultClientFactory) Accounts(profilePath string) (ads.AccountClient, error) {
	return newClient(profilePath)
}

func newClient(profilePath string) (*ads.Client, error) {
	cfg, err := ads.LoadConfig(profilePath)
	if err != nil {
		return nil, err
	}
	return ads.NewClient(*cfg), nil
}

// Deps are the shared collaborators every command is wired with.
type Deps struct {
	Output  io.Writer
	Clock   gaql.Clock
	Clients ClientFactory
}
