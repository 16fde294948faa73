package postgres

type performanceTableModel struct {
	ID            int64 `db:"id"`
	PlayerID      int64 `db:"player_id"`
	MatchID       int64 `db:"match_id"`
	Goals         int   `db:"goals"`
	Assists       int   `db:"assists"`
	CleanSheet    bool  `db:"clean_sheet"`
	GoalsConceded int   `db:"goals_conceded"`
	YellowCards   int   `db:"yellow_cards"`
	RedCards      int   `db:"red_cards"`
	MinutesPlayed int   `db:"minutes_played"`
	BonusPoints   int   `db:"bonus_points"`
	Points        int   `db:"points"`
}

type performanceInsertModel struct {
	PlayerID      int64 `db:"player_id"`
	MatchID       int64 `db:"match_id"`
	Goals         int   `db:"goals"`
	Assists       int   `db:"assists"`
	CleanSheet    bool  `db:"clean_sheet"`
	GoalsConceded int   `db:"goals_conceded"`
	YellowCards   int   `db:"yellow_cards"`
	RedCards      int   `db:"red_cards"`
	MinutesPlayed int   `db:"minutes_played"`
	BonusPoints   int   `db:"bonus_points"`
	Points        int   `db:"points"`
}
