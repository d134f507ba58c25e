package domain

import (
	"time"

	"gorm.io/datatypes"
)

// WaitingUsers is the payload of a fixture epoch: the players waiting at that point in the test
type WaitingUsers struct {
	User []*Player `json:"user"`
}

// FixtureEpoch is one epoch of a named matchmaking test, stored in postgres
type FixtureEpoch struct {
	TestName  string                      `json:"testName" gorm:"type:varchar(100);primaryKey"`
	Epoch     string                      `json:"epoch" gorm:"type:varchar(64);primaryKey"`
	NextEpoch *string                     `json:"nextEpoch" gorm:"type:varchar(64)"`
	Users     datatypes.JSONSlice[Player] `json:"users" gorm:"not null"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (FixtureEpoch) TableName() string {
	return "fixture_epochs"
}

// Players returns the stored users as pointers in their stored order
func (f *FixtureEpoch) Players() []*Player {
	players := make([]*Player, len(f.Users))
	for i := range f.Users {
		p := f.Users[i]
		players[i] = &p
	}
	return players
}
