package service

import (
	"fmt"

	"beemo-api/internal/domain"

	"github.com/mitchellh/mapstructure"
)

type matchDocument struct {
	Info struct {
		GameMode     string             `json:"gameMode"`
		GameCreation int64              `json:"gameCreation"`
		GameDuration int64              `json:"gameDuration"`
		Participants []matchParticipant `json:"participants"`
	} `json:"info"`
}

type matchParticipant struct {
	Puuid                       string `json:"puuid"`
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
	Item0                       int    `json:"item0"`
	Item1                       int    `json:"item1"`
	Item2                       int    `json:"item2"`
	Item3                       int    `json:"item3"`
	Item4                       int    `json:"item4"`
	Item5                       int    `json:"item5"`
	Item6                       int    `json:"item6"`
	TeamPosition                string `json:"teamPosition"`
}

func decodeMatch(raw map[string]any) (*matchDocument, error) {
	var doc matchDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode match: %w", err)
	}
	return &doc, nil
}

// summarizeMatch keeps the match header and the stats of the participant
// whose puuid matches. Participant is nil when the player is absent.
func summarizeMatch(matchID, puuid string, raw map[string]any) (domain.MatchSummary, error) {
	doc, err := decodeMatch(raw)
	if err != nil {
		return domain.MatchSummary{}, err
	}

	summary := domain.MatchSummary{
		MatchID:      matchID,
		GameMode:     doc.Info.GameMode,
		GameCreation: doc.Info.GameCreation,
		GameDuration: doc.Info.GameDuration,
	}
	for _, p := range doc.Info.Participants {
		if p.Puuid != puuid {
			continue
		}
		summary.Participant = &domain.ParticipantStats{
			ChampionName:                p.ChampionName,
			ChampionID:                  p.ChampionID,
			Kills:                       p.Kills,
			Deaths:                      p.Deaths,
			Assists:                     p.Assists,
			TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
			GoldEarned:                  p.GoldEarned,
			ChampLevel:                  p.ChampLevel,
			TotalMinionsKilled:          p.TotalMinionsKilled,
			VisionScore:                 p.VisionScore,
			Win:                         p.Win,
			Items:                       [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6},
			TeamPosition:                p.TeamPosition,
		}
		break
	}
	return summary, nil
}
