package server

import (
	"net/http"
	"testing"

	"beemo-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLol_SummonerDefaults(t *testing.T) {
	d := newDeps()
	rec, body := get(t, d.router(), "/lol/summoner/Foo")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "euw1", d.lol.gotRegion)
	assert.Equal(t, "", d.lol.gotTag)
	assert.Equal(t, "Foo", body["gameName"])
	assert.Equal(t, "EUW", body["tagLine"])
	assert.Equal(t, "p-1", body["puuid"])
	assert.EqualValues(t, 99, body["summonerLevel"])
}

func TestLol_SummonerQueryAndEscapedName(t *testing.T) {
	d := newDeps()
	rec, _ := get(t, d.router(), "/lol/summoner/Foo%20Bar?region=kr&tagLine=KR1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Foo Bar", d.lol.gotName)
	assert.Equal(t, "kr", d.lol.gotRegion)
	assert.Equal(t, "KR1", d.lol.gotTag)
}

func TestLol_SummonerNameDecodedOnce(t *testing.T) {
	cases := map[string]string{
		"/lol/summoner/a%2541":    "a%41",
		"/lol/summoner/Foo%2FBar": "Foo/Bar",
		"/lol/summoner/Zo%C3%AB":  "Zoë",
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			d := newDeps()
			rec, _ := get(t, d.router(), path)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, want, d.lol.gotName)
		})
	}
}

func TestLol_ErrorCodes(t *testing.T) {
	cases := []struct {
		path string
		code string
	}{
		{"/lol/summoner/Foo", "summoner_not_found"},
		{"/lol/summoner/Foo/rank", "rank_not_found"},
		{"/lol/summoner/Foo/masteries", "masteries_not_found"},
		{"/lol/summoner/Foo/profile", "profile_not_found"},
		{"/lol/summoner/Foo/matches", "matches_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			d := newDeps()
			d.lol.resolveErr = service.ErrSummonerNotFound

			rec, body := get(t, d.router(), tc.path)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tc.code, body["error"])
			assert.NotEmpty(t, body["message"])
			assert.NotEmpty(t, body["requestId"])
			assert.Equal(t, rec.Header().Get("X-Request-ID"), body["requestId"])
		})
	}
}

func TestLol_RankFailureAfterResolve(t *testing.T) {
	d := newDeps()
	d.lol.ranksErr = errBoom

	rec, body := get(t, d.router(), "/lol/summoner/Foo/rank")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "rank_not_found", body["error"])
}

func TestLol_Rank(t *testing.T) {
	rec, body := get(t, newDeps().router(), "/lol/summoner/Foo/rank")
	require.Equal(t, http.StatusOK, rec.Code)

	summoner := body["summoner"].(map[string]any)
	assert.EqualValues(t, 99, summoner["level"])
	assert.Len(t, body["ranks"], 1)
}

func TestLol_MasteriesTop(t *testing.T) {
	d := newDeps()
	rec, body := get(t, d.router(), "/lol/summoner/Foo/masteries")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, d.lol.gotTop)
	assert.Len(t, body["masteries"], 1)

	_, _ = get(t, d.router(), "/lol/summoner/Foo/masteries?top=3")
	assert.Equal(t, 3, d.lol.gotTop)
}

func TestLol_ProfileOptions(t *testing.T) {
	d := newDeps()
	rec, body := get(t, d.router(), "/lol/summoner/Foo-EUW/profile")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ProfileOptions{Routing: "europe", TopChampions: 5, MatchCount: 10}, d.lol.gotOpts)
	assert.Contains(t, body, "recentMatches")

	_, _ = get(t, d.router(), "/lol/summoner/Foo/profile?platform=asia&topChampions=3&matchCount=20")
	assert.Equal(t, service.ProfileOptions{Routing: "asia", TopChampions: 3, MatchCount: 20}, d.lol.gotOpts)

	_, _ = get(t, d.router(), "/lol/summoner/Foo/profile?matchCount=lots")
	assert.Equal(t, 10, d.lol.gotOpts.MatchCount)
}

func TestLol_ProfileBadPlatform(t *testing.T) {
	rec, body := get(t, newDeps().router(), "/lol/summoner/Foo/profile?platform=mars")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "profile_not_found", body["error"])
}

func TestLol_Matches(t *testing.T) {
	d := newDeps()
	rec, body := get(t, d.router(), "/lol/summoner/Foo/matches?count=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, d.lol.gotCount)
	assert.EqualValues(t, 2, body["count"])
	assert.Equal(t, []any{"EUW1_1", "EUW1_2"}, body["matchIds"])
	assert.Equal(t, "p-1", body["summoner"].(map[string]any)["puuid"])
}

func TestLol_Match(t *testing.T) {
	rec, body := get(t, newDeps().router(), "/lol/match/EUW1_1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "metadata")

	rec, body = get(t, newDeps().router(), "/lol/match/EUW1_2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "match_not_found", body["error"])
}

func TestLol_Catalogs(t *testing.T) {
	d := newDeps()

	rec, body := get(t, d.router(), "/lol/champions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["count"])

	rec, body = get(t, d.router(), "/lol/items")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	rec, body = get(t, d.router(), "/lol/version")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "14.1.1", body["version"])

	rec, body = get(t, d.router(), "/lol/champion/Teemo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Teemo", body["id"])

	rec, body = get(t, d.router(), "/lol/champion/Nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "champion_not_found", body["error"])
}

func TestLol_CatalogFailuresAre500(t *testing.T) {
	d := newDeps()
	d.catalog.err = errBoom

	for path, code := range map[string]string{
		"/lol/champions": "champions_fetch_failed",
		"/lol/items":     "items_fetch_failed",
		"/lol/version":   "version_fetch_failed",
	} {
		rec, body := get(t, d.router(), path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.Equal(t, code, body["error"], path)
	}
}
