package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"beemo-api/internal/api"
	"beemo-api/internal/config"
	"beemo-api/internal/domain"
	"beemo-api/internal/repository"

	"github.com/rs/zerolog"
)

var nopLogger = zerolog.New(io.Discard)

type fakeRiot struct {
	accounts  map[string]domain.Account // "name#tag"
	summoners map[string]domain.Summoner
	byName    map[string]domain.Summoner
	ranks     []domain.RankEntry
	ranksErr  error
	legacy    []domain.RankEntry
	masteries []domain.ChampionMastery
	matchIDs  []string
	matches   map[string]map[string]any

	mu             sync.Mutex
	accountCalls   []string
	byNameCalls    []string
	legacyCalledBy string
	matchIDsCount  int
	matchCalls     atomic.Int32
}

var _ RiotAPI = (*fakeRiot)(nil)

func (f *fakeRiot) GetAccountByRiotID(_ context.Context, routing, gameName, tagLine string) (*domain.Account, error) {
	f.mu.Lock()
	f.accountCalls = append(f.accountCalls, routing+"/"+gameName+"#"+tagLine)
	f.mu.Unlock()

	acc, ok := f.accounts[gameName+"#"+tagLine]
	if !ok {
		return nil, &api.UpstreamError{Source: "Riot API", Status: 404, Body: "Data not found"}
	}
	return &acc, nil
}

func (f *fakeRiot) GetSummonerByPUUID(_ context.Context, _, puuid string) (*domain.Summoner, error) {
	s, ok := f.summoners[puuid]
	if !ok {
		return nil, &api.UpstreamError{Source: "Riot API", Status: 404, Body: "Data not found"}
	}
	return &s, nil
}

func (f *fakeRiot) GetSummonerByName(_ context.Context, region, name string) (*domain.Summoner, error) {
	f.mu.Lock()
	f.byNameCalls = append(f.byNameCalls, region+"/"+name)
	f.mu.Unlock()

	s, ok := f.byName[name]
	if !ok {
		return nil, &api.UpstreamError{Source: "Riot API", Status: 403, Body: "Forbidden"}
	}
	return &s, nil
}

func (f *fakeRiot) GetLeagueEntriesByPUUID(context.Context, string, string) ([]domain.RankEntry, error) {
	return f.ranks, f.ranksErr
}

func (f *fakeRiot) GetLeagueEntriesBySummonerID(_ context.Context, _, summonerID string) ([]domain.RankEntry, error) {
	f.mu.Lock()
	f.legacyCalledBy = summonerID
	f.mu.Unlock()
	if f.legacy == nil {
		return nil, &api.UpstreamError{Source: "Riot API", Status: 403, Body: "Forbidden"}
	}
	return f.legacy, nil
}

func (f *fakeRiot) GetChampionMasteries(context.Context, string, string) ([]domain.ChampionMastery, error) {
	return f.masteries, nil
}

func (f *fakeRiot) GetTopChampionMasteries(_ context.Context, _, _ string, count int) ([]domain.ChampionMastery, error) {
	return f.masteries[:min(count, len(f.masteries))], nil
}

func (f *fakeRiot) GetMatchIDs(_ context.Context, _, _ string, _, count int) ([]string, error) {
	f.mu.Lock()
	f.matchIDsCount = count
	f.mu.Unlock()
	return f.matchIDs[:min(count, len(f.matchIDs))], nil
}

func (f *fakeRiot) GetMatch(_ context.Context, _, matchID string) (map[string]any, error) {
	f.matchCalls.Add(1)
	m, ok := f.matches[matchID]
	if !ok {
		return nil, &api.UpstreamError{Source: "Riot API", Status: 500, Body: "boom"}
	}
	return m, nil
}

type fakeDDragon struct {
	versions  []string
	champions map[string]domain.Champion
	items     map[string]domain.Item
	details   map[string]map[string]any
	err       error

	// when set, GetVersions waits on release and reports its ctx error on fillErrs
	release  chan struct{}
	fillErrs chan error

	versionCalls  atomic.Int32
	championCalls atomic.Int32
	itemCalls     atomic.Int32
}

var _ StaticDataAPI = (*fakeDDragon)(nil)

func (f *fakeDDragon) GetVersions(ctx context.Context) ([]string, error) {
	f.versionCalls.Add(1)
	if f.release != nil {
		<-f.release
		f.fillErrs <- ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.versions, nil
}

func (f *fakeDDragon) GetChampions(context.Context, string) (map[string]domain.Champion, error) {
	f.championCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.champions, nil
}

func (f *fakeDDragon) GetChampionDetails(_ context.Context, _, name string) (map[string]any, error) {
	d, ok := f.details[name]
	if !ok {
		return nil, &api.UpstreamError{Source: "Data Dragon", Status: 403, Body: "AccessDenied"}
	}
	return d, nil
}

func (f *fakeDDragon) GetItems(context.Context, string) (map[string]domain.Item, error) {
	f.itemCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeDDragon) ChampionIconURL(version, championID string) string {
	return fmt.Sprintf("https://cdn/%s/img/champion/%s.png", version, championID)
}

func (f *fakeDDragon) ItemIconURL(version string, itemID int) string {
	return fmt.Sprintf("https://cdn/%s/img/item/%d.png", version, itemID)
}

func (f *fakeDDragon) ChampionSplashURL(championID string, skinNum int) string {
	return fmt.Sprintf("https://cdn/img/champion/splash/%s_%d.jpg", championID, skinNum)
}

func newFakeDDragon() *fakeDDragon {
	return &fakeDDragon{
		versions: []string{"14.1.1", "13.24.1"},
		champions: map[string]domain.Champion{
			"Teemo": {ID: "Teemo", Key: "17", Name: "Teemo"},
			"Ahri":  {ID: "Ahri", Key: "103", Name: "Ahri"},
			"Bad":   {ID: "Bad", Key: "not-a-number", Name: "Bad"},
		},
		items: map[string]domain.Item{
			"1001": {Name: "Boots"},
		},
		details: map[string]map[string]any{
			"Teemo": {"id": "Teemo", "title": "the Swift Scout"},
		},
	}
}

func newTestCatalog(dd *fakeDDragon) *CatalogService {
	return NewCatalogService(dd, &config.Config{StaticDataTTL: time.Hour}, nopLogger)
}

type fakeAwards struct {
	mu      sync.Mutex
	created []domain.Award
	counts  map[domain.AwardKind]map[string]int64
	err     error
}

var _ AwardStore = (*fakeAwards)(nil)

func (f *fakeAwards) Create(_ context.Context, _ domain.AwardKind, username string, reason *string) (*domain.Award, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a := domain.Award{ID: int64(len(f.created) + 1), Username: username, Reason: reason, CreatedAt: time.Now()}
	f.created = append(f.created, a)
	return &a, nil
}

func (f *fakeAwards) CountByUsername(_ context.Context, kind domain.AwardKind, username string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[kind][username], nil
}

func (f *fakeAwards) Top(_ context.Context, kind domain.AwardKind, limit int) ([]domain.AwardCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.AwardCount{{Username: "x", Total: int64(limit)}}, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[int64]*domain.User
}

var _ UserStore = (*fakeUsers)(nil)

func (f *fakeUsers) UpsertByDiscordID(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users == nil {
		f.users = map[int64]*domain.User{}
	}
	for _, u := range f.users {
		if u.DiscordID == user.DiscordID {
			u.Username, u.Email, u.AvatarURL = user.Username, user.Email, user.AvatarURL
			return u, nil
		}
	}
	saved := *user
	saved.ID = int64(len(f.users) + 1)
	f.users[saved.ID] = &saved
	return &saved, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeTokens struct {
	mu      sync.Mutex
	byHash  map[string]*domain.AccessToken
	touched []int64
}

var _ TokenStore = (*fakeTokens)(nil)

func (f *fakeTokens) Create(_ context.Context, token *domain.AccessToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byHash == nil {
		f.byHash = map[string]*domain.AccessToken{}
	}
	token.ID = int64(len(f.byHash) + 1)
	stored := *token
	f.byHash[token.Hash] = &stored
	return nil
}

func (f *fakeTokens) GetByHash(_ context.Context, hash string) (*domain.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byHash[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTokens) Touch(_ context.Context, id int64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return nil
}

var errBoom = errors.New("boom")
