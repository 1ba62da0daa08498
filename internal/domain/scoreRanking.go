package domain

import "time"

type ScoreRankingResponse struct {
	Formula    FormulaID          `json:"formula"`
	Month      string             `json:"month"`
	Ranking    []ScoreRankingItem `json:"ranking"`
	LastUpdate time.Time          `json:"last_update"`
}

type ScoreRankingItem struct {
	ID               int       `json:"id"`
	RunID            string    `json:"run_id"`
	AccountID        string    `json:"account_id"`
	Month            string    `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	Formula          FormulaID `json:"formula"`
	AccountName      string    `json:"account_name"`
	Score            int       `json:"score"`
	Revenue          float64   `json:"revenue"`
	Recipients       int64     `json:"recipients"`
	Campaigns        int       `json:"campaigns"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int       `json:"previous_position"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
