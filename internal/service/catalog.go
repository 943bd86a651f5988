package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strconv"
	"sync"

	"beemo-api/internal/api"
	"beemo-api/internal/config"
	"beemo-api/internal/constants"
	"beemo-api/internal/domain"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const versionKey = "version"

// CatalogService is a read-through cache over Data Dragon. Entries are keyed
// by game version and the whole cache is flushed when a newer version shows up.
type CatalogService struct {
	ddragon StaticDataAPI
	cache   *cache.Cache
	group   singleflight.Group
	logger  zerolog.Logger

	mu      sync.Mutex
	version string
}

func NewCatalogService(ddragon StaticDataAPI, cfg *config.Config, logger zerolog.Logger) *CatalogService {
	ttl := cfg.StaticDataTTL
	if ttl <= 0 {
		ttl = constants.StaticDataTTL
	}
	return &CatalogService{
		ddragon: ddragon,
		cache:   cache.New(ttl, constants.StaticDataCleanup),
		logger:  logger,
	}
}

// cached fills key once across concurrent callers. The fill is detached from
// the caller that started it and bounded by ExternalAPITimeout; each caller
// still stops waiting when its own ctx is done.
func cached[T any](ctx context.Context, s *CatalogService, key string, fill func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := s.cache.Get(key); ok {
		return v.(T), nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ExternalAPITimeout)
		defer cancel()

		val, err := fill(fctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetDefault(key, val)
		return val, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		s.logger.Debug().Str("key", key).Bool("shared", res.Shared).Msg("static data loaded")
		return res.Val.(T), nil
	}
}

// observeVersion must run before the new version is stored.
func (s *CatalogService) observeVersion(latest string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != "" && s.version != latest {
		s.logger.Info().Str("previous", s.version).Str("latest", latest).Msg("game version changed, flushing static data")
		s.cache.Flush()
	}
	s.version = latest
}

func (s *CatalogService) LatestVersion(ctx context.Context) (string, error) {
	return cached(ctx, s, versionKey, func(ctx context.Context) (string, error) {
		versions, err := s.ddragon.GetVersions(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to fetch versions")
			return "", fmt.Errorf("failed to fetch versions: %w", err)
		}
		if len(versions) == 0 {
			return "", errors.New("no game versions available")
		}
		s.observeVersion(versions[0])
		return versions[0], nil
	})
}

func (s *CatalogService) Champions(ctx context.Context) (map[string]domain.Champion, error) {
	version, err := s.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s, "champions:"+version, func(ctx context.Context) (map[string]domain.Champion, error) {
		champions, err := s.ddragon.GetChampions(ctx, version)
		if err != nil {
			s.logger.Error().Err(err).Str("version", version).Msg("failed to fetch champions")
			return nil, fmt.Errorf("failed to fetch champions: %w", err)
		}
		return champions, nil
	})
}

// ChampionByID returns the champion whose numeric key is id, or nil.
func (s *CatalogService) ChampionByID(ctx context.Context, id int) (*domain.Champion, error) {
	champions, err := s.Champions(ctx)
	if err != nil {
		return nil, err
	}
	for _, champion := range champions {
		key, err := strconv.Atoi(champion.Key)
		if err != nil {
			continue
		}
		if key == id {
			return &champion, nil
		}
	}
	return nil, nil
}

func (s *CatalogService) ChampionDetails(ctx context.Context, championName string) (map[string]any, error) {
	version, err := s.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s, "champion:"+version+":"+championName, func(ctx context.Context) (map[string]any, error) {
		details, err := s.ddragon.GetChampionDetails(ctx, version, championName)
		switch {
		case err == nil:
			return s.withChampionArt(version, championName, details), nil
		case errors.Is(err, api.ErrNotFound), api.IsStatus(err, http.StatusNotFound), api.IsStatus(err, http.StatusForbidden):
			// the CDN answers 403 for unknown champion files
			return nil, fmt.Errorf("%w: %s: %w", ErrChampionNotFound, championName, err)
		default:
			s.logger.Error().Err(err).Str("champion", championName).Msg("failed to fetch champion details")
			return nil, fmt.Errorf("failed to fetch champion %s: %w", championName, err)
		}
	})
}

func (s *CatalogService) Items(ctx context.Context) (map[string]domain.Item, error) {
	version, err := s.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s, "items:"+version, func(ctx context.Context) (map[string]domain.Item, error) {
		items, err := s.ddragon.GetItems(ctx, version)
		if err != nil {
			s.logger.Error().Err(err).Str("version", version).Msg("failed to fetch items")
			return nil, fmt.Errorf("failed to fetch items: %w", err)
		}
		withIcons := make(map[string]domain.Item, len(items))
		for key, item := range items {
			if id, err := strconv.Atoi(key); err == nil {
				item.IconURL = s.ddragon.ItemIconURL(version, id)
			}
			withIcons[key] = item
		}
		return withIcons, nil
	})
}

func (s *CatalogService) ChampionIconURL(ctx context.Context, championID string) (string, error) {
	version, err := s.LatestVersion(ctx)
	if err != nil {
		return "", err
	}
	return s.ddragon.ChampionIconURL(version, championID), nil
}

// withChampionArt copies details and adds the square icon, the default splash
// and a splash per skin.
func (s *CatalogService) withChampionArt(version, championName string, details map[string]any) map[string]any {
	id := championName
	if v, ok := details["id"].(string); ok && v != "" {
		id = v
	}

	out := maps.Clone(details)
	out["icon"] = s.ddragon.ChampionIconURL(version, id)
	out["splash"] = s.ddragon.ChampionSplashURL(id, 0)

	if skins, ok := details["skins"].([]any); ok {
		withSplash := make([]any, 0, len(skins))
		for _, raw := range skins {
			skin, ok := raw.(map[string]any)
			if !ok {
				withSplash = append(withSplash, raw)
				continue
			}
			num, _ := skin["num"].(float64)
			skin = maps.Clone(skin)
			skin["splash"] = s.ddragon.ChampionSplashURL(id, int(num))
			withSplash = append(withSplash, skin)
		}
		out["skins"] = withSplash
	}
	return out
}
