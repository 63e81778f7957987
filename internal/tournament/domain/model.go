package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Team is a qualified national team. TeamID is the stable tournament-data
// identifier used by games and standings; the snowflake primary key stays
// internal.
type Team struct {
	ID snowflake.ID `gorm:"primaryKey" json:"-"`

	TeamID   string `gorm:"column:team_id;type:text;not null;uniqueIndex" json:"id"`
	NameEN   string `gorm:"column:name_en;type:text;not null" json:"name_en"`
	NameFA   string `gorm:"column:name_fa;type:text;not null" json:"name_fa"`
	Flag     string `gorm:"column:flag;type:text" json:"flag"`
	FIFACode string `gorm:"column:fifa_code;type:text" json:"fifa_code"`
	ISO2     string `gorm:"column:iso2;type:text" json:"iso2"`
	Group    string `gorm:"column:group_name;type:text;index" json:"group"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"-"`
}

func (Team) TableName() string { return "teams" }

// Standing is one row of a group table.
type Standing struct {
	TeamID string `json:"team_id"`
	Played int    `json:"mp"`
	Won    int    `json:"w"`
	Drawn  int    `json:"d"`
	Lost   int    `json:"l"`
	Points int    `json:"pts"`
	GF     int    `json:"gf"`
	GA     int    `json:"ga"`
	GD     int    `json:"gd"`
}

// Group is a first-round group (A through L) with its standings table.
type Group struct {
	ID snowflake.ID `gorm:"primaryKey" json:"-"`

	Name      string                        `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Standings datatypes.JSONSlice[Standing] `gorm:"column:standings" json:"standings"`
	CreatedAt time.Time                     `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt time.Time                     `gorm:"column:updated_at;not null" json:"-"`
}

func (Group) TableName() string { return "groups" }

// Stadium is one of the host venues.
type Stadium struct {
	ID snowflake.ID `gorm:"primaryKey" json:"-"`

	StadiumID string `gorm:"column:stadium_id;type:text;not null;uniqueIndex" json:"id"`
	NameEN    string `gorm:"column:name_en;type:text;not null" json:"name_en"`
	NameFA    string `gorm:"column:name_fa;type:text;not null" json:"name_fa"`
	FIFAName  string `gorm:"column:fifa_name;type:text" json:"fifa_name,omitempty"`
	CityEN    string `gorm:"column:city_en;type:text;not null" json:"city_en"`
	CityFA    string `gorm:"column:city_fa;type:text;not null" json:"city_fa"`
	CountryEN string `gorm:"column:country_en;type:text;not null" json:"country_en"`
	CountryFA string `gorm:"column:country_fa;type:text;not null" json:"country_fa"`
	Capacity  int    `gorm:"column:capacity;not null" json:"capacity"`
	Region    string `gorm:"column:region;type:text" json:"region,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"-"`
}

func (Stadium) TableName() string { return "stadiums" }

// Game is a scheduled or finished match. Team and stadium references use
// the stable tournament-data identifiers.
type Game struct {
	ID snowflake.ID `gorm:"primaryKey" json:"-"`

	GameID     string `gorm:"column:game_id;type:text;not null;uniqueIndex" json:"id"`
	HomeTeamID string `gorm:"column:home_team_id;type:text;not null;index" json:"home_team_id"`
	AwayTeamID string `gorm:"column:away_team_id;type:text;not null;index" json:"away_team_id"`

	HomeScore   int    `gorm:"column:home_score;not null" json:"home_score"`
	AwayScore   int    `gorm:"column:away_score;not null" json:"away_score"`
	HomeScorers string `gorm:"column:home_scorers;type:text" json:"home_scorers,omitempty"`
	AwayScorers string `gorm:"column:away_scorers;type:text" json:"away_scorers,omitempty"`

	Group       string    `gorm:"column:group_name;type:text;index" json:"group,omitempty"`
	Matchday    string    `gorm:"column:matchday;type:text" json:"matchday,omitempty"`
	Stage       string    `gorm:"column:stage;type:text;not null" json:"stage"`
	StadiumID   string    `gorm:"column:stadium_id;type:text;not null;index" json:"stadium_id"`
	KickoffAt   time.Time `gorm:"column:kickoff_at;not null;index" json:"kickoff_at"`
	LocalDate   string    `gorm:"column:local_date;type:text" json:"local_date,omitempty"`
	PersianDate string    `gorm:"column:persian_date;type:text" json:"persian_date,omitempty"`
	Finished    bool      `gorm:"column:finished;not null" json:"finished"`
	TimeElapsed string    `gorm:"column:time_elapsed;type:text" json:"time_elapsed,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"-"`
}

func (Game) TableName() string { return "games" }

// GameView is a game enriched with denormalized team names for listings.
type GameView struct {
	Game
	HomeTeamNameEN string `json:"home_team_name_en,omitempty"`
	HomeTeamNameFA string `json:"home_team_name_fa,omitempty"`
	AwayTeamNameEN string `json:"away_team_name_en,omitempty"`
	AwayTeamNameFA string `json:"away_team_name_fa,omitempty"`
}

// TeamName is the cached projection used to enrich game listings.
type TeamName struct {
	NameEN string
	NameFA string
}
