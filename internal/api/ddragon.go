package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"beemo-api/internal/config"
	"beemo-api/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const ddragonSource = "Data Dragon"

// DDragonClient reads the unauthenticated static data CDN.
type DDragonClient struct {
	baseURL string
	locale  string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewDDragonClient(cfg *config.Config, logger zerolog.Logger) *DDragonClient {
	return &DDragonClient{
		baseURL: cfg.DDragonBaseURL,
		locale:  cfg.DDragonLocale,
		client:  newHTTPClient(),
		logger:  logger.With().Str("component", "ddragon").Logger(),
	}
}

type dataset[T any] struct {
	Type    string       `json:"type"`
	Version string       `json:"version"`
	Data    map[string]T `json:"data"`
}

func (c *DDragonClient) endpoint(path string) string {
	c.logger.Debug().Str("path", path).Msg("ddragon request")
	return c.baseURL + path
}

func (c *DDragonClient) GetVersions(ctx context.Context) ([]string, error) {
	versions, err := doRequest[[]string](ctx, c.client, ddragonSource, c.endpoint("/api/versions.json"), nil)
	if err != nil {
		return nil, err
	}
	if len(*versions) == 0 {
		return nil, errors.New("data dragon returned no versions")
	}
	return *versions, nil
}

func (c *DDragonClient) GetChampions(ctx context.Context, version string) (map[string]domain.Champion, error) {
	path := fmt.Sprintf("/cdn/%s/data/%s/champion.json", url.PathEscape(version), c.locale)
	ds, err := doRequest[dataset[domain.Champion]](ctx, c.client, ddragonSource, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	return ds.Data, nil
}

// GetChampionDetails returns the full per-champion document (spells, skins, lore).
func (c *DDragonClient) GetChampionDetails(ctx context.Context, version, championName string) (map[string]any, error) {
	path := fmt.Sprintf("/cdn/%s/data/%s/champion/%s.json", url.PathEscape(version), c.locale, url.PathEscape(championName))
	ds, err := doRequest[dataset[map[string]any]](ctx, c.client, ddragonSource, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	details, ok := ds.Data[championName]
	if !ok {
		return nil, fmt.Errorf("champion %q: %w", championName, ErrNotFound)
	}
	return details, nil
}

func (c *DDragonClient) GetItems(ctx context.Context, version string) (map[string]domain.Item, error) {
	path := fmt.Sprintf("/cdn/%s/data/%s/item.json", url.PathEscape(version), c.locale)
	ds, err := doRequest[dataset[domain.Item]](ctx, c.client, ddragonSource, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	return ds.Data, nil
}

func (c *DDragonClient) ChampionIconURL(version, championID string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", c.baseURL, version, championID)
}

func (c *DDragonClient) ItemIconURL(version string, itemID int) string {
	return fmt.Sprintf("%s/cdn/%s/img/item/%d.png", c.baseURL, version, itemID)
}

func (c *DDragonClient) ChampionSplashURL(championID string, skinNum int) string {
	return fmt.Sprintf("%s/cdn/img/champion/splash/%s_%d.jpg", c.baseURL, championID, skinNum)
}
