package domain

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	DiscordID    string    `json:"discordId"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	AvatarURL    *string   `json:"avatarUrl"`
	RiotPuuid    *string   `json:"riotPuuid"`
	RiotGameName *string   `json:"riotGameName"`
	RiotTagLine  *string   `json:"riotTagLine"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type AccessToken struct {
	ID         int64
	UserID     int64
	Hash       string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	LastUsedAt *time.Time
}

// AwardKind names the table an award is stored in.
type AwardKind string

const (
	AwardShroom  AwardKind = "shrooms"
	AwardRespect AwardKind = "respects"
)

type Award struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Reason    *string    `json:"reason"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type AwardCount struct {
	Username string
	Total    int64
}

type UserStats struct {
	Username string `json:"username"`
	Shrooms  int64  `json:"shrooms"`
	Respects int64  `json:"respects"`
}

// Account is a Riot ID resolved to its puuid.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner id, accountId and name are deprecated upstream and often absent.
type Summoner struct {
	ID            string `json:"id,omitempty"`
	AccountID     string `json:"accountId,omitempty"`
	Puuid         string `json:"puuid"`
	Name          string `json:"name,omitempty"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int64  `json:"summonerLevel"`
}

type ResolvedSummoner struct {
	Account  Account
	Summoner Summoner
	Region   string
}

type RankEntry struct {
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	SummonerID   string `json:"summonerId,omitempty"`
	SummonerName string `json:"summonerName,omitempty"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Veteran      bool   `json:"veteran"`
	Inactive     bool   `json:"inactive"`
	FreshBlood   bool   `json:"freshBlood"`
	HotStreak    bool   `json:"hotStreak"`
}

type ChampionMastery struct {
	ChampionID                   int    `json:"championId"`
	ChampionLevel                int    `json:"championLevel"`
	ChampionPoints               int64  `json:"championPoints"`
	LastPlayTime                 int64  `json:"lastPlayTime"`
	ChampionPointsSinceLastLevel int64  `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int64  `json:"championPointsUntilNextLevel"`
	ChestGranted                 bool   `json:"chestGranted"`
	TokensEarned                 int    `json:"tokensEarned"`
	SummonerID                   string `json:"summonerId,omitempty"`
}

// EnrichedMastery carries the champion display data resolved from the static catalog.
type EnrichedMastery struct {
	ChampionMastery
	ChampionName  string  `json:"championName"`
	ChampionImage *string `json:"championImage"`
}

type ParticipantStats struct {
	ChampionName                string `json:"championName"`
	ChampionID                  int    `json:"championId"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	TotalDamageDealtToChampions int64  `json:"totalDamageDealtToChampions"`
	GoldEarned                  int64  `json:"goldEarned"`
	ChampLevel                  int    `json:"champLevel"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	VisionScore                 int    `json:"visionScore"`
	Win                         bool   `json:"win"`
	Items                       [7]int `json:"items"`
	TeamPosition                string `json:"teamPosition"`
}

type MatchSummary struct {
	MatchID      string            `json:"matchId"`
	GameMode     string            `json:"gameMode"`
	GameCreation int64             `json:"gameCreation"`
	GameDuration int64             `json:"gameDuration"`
	Participant  *ParticipantStats `json:"participant"`
}

type ProfileSummoner struct {
	Puuid         string `json:"puuid"`
	Name          string `json:"name,omitempty"`
	GameName      string `json:"gameName"`
	TagLine       string `json:"tagLine"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate"`
}

// ProfileRank.WinRate is nil when the queue has no games.
type ProfileRank struct {
	QueueType    string   `json:"queueType"`
	Tier         string   `json:"tier"`
	Rank         string   `json:"rank"`
	LeaguePoints int      `json:"leaguePoints"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	WinRate      *float64 `json:"winRate"`
	HotStreak    bool     `json:"hotStreak"`
	Veteran      bool     `json:"veteran"`
	FreshBlood   bool     `json:"freshBlood"`
}

type ProfileChampion struct {
	ChampionID     int     `json:"championId"`
	ChampionName   string  `json:"championName"`
	ChampionImage  *string `json:"championImage"`
	ChampionLevel  int     `json:"championLevel"`
	ChampionPoints int64   `json:"championPoints"`
	ChestGranted   bool    `json:"chestGranted"`
	LastPlayTime   int64   `json:"lastPlayTime"`
}

type Profile struct {
	Summoner      ProfileSummoner   `json:"summoner"`
	Ranks         []ProfileRank     `json:"ranks"`
	TopChampions  []ProfileChampion `json:"topChampions"`
	RecentMatches []MatchSummary    `json:"recentMatches"`
	TotalMatches  int               `json:"totalMatches"`
}

type ChampionImage struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
}

type Champion struct {
	Version string             `json:"version"`
	ID      string             `json:"id"`
	Key     string             `json:"key"`
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Blurb   string             `json:"blurb"`
	Info    map[string]int     `json:"info"`
	Image   ChampionImage      `json:"image"`
	Tags    []string           `json:"tags"`
	Partype string             `json:"partype"`
	Stats   map[string]float64 `json:"stats"`
}

type ItemGold struct {
	Base        int  `json:"base"`
	Purchasable bool `json:"purchasable"`
	Total       int  `json:"total"`
	Sell        int  `json:"sell"`
}

type Item struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Plaintext   string          `json:"plaintext"`
	Into        []string        `json:"into,omitempty"`
	From        []string        `json:"from,omitempty"`
	Image       ChampionImage   `json:"image"`
	Gold        ItemGold        `json:"gold"`
	Tags        []string        `json:"tags"`
	Maps        map[string]bool `json:"maps"`
	Stats       map[string]any  `json:"stats"`
	IconURL     string          `json:"iconUrl,omitempty"`
}
