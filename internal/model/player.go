package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// NoUnit is the join number forwarded when a unit reference could not be parsed.
// Join numbers start at 1, so it never matches a unit.
const NoUnit = 0

// UnitStatus is the hp/atk/def triple of a unit
type UnitStatus struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
}

// UnitTemplate is an immutable unit definition copied into players
type UnitTemplate struct {
	Name          string
	JoinNumber    int
	DefaultStatus UnitStatus
}

// Unit is a player's copy of a unit template
type Unit struct {
	Name          string     `json:"name"`
	JoinNumber    int        `json:"joinNumber"`
	DefaultStatus UnitStatus `json:"defaultStatus"`
	CurrentStatus UnitStatus `json:"currentStatus"`
}

// IsDefeated reports whether the unit has no hp left
func (u *Unit) IsDefeated() bool {
	return u.CurrentStatus.HP <= 0
}

// Player is a named roster of units
type Player struct {
	PlayerID PlayerID `json:"playerId"`
	Name     string   `json:"name"`
	Units    []Unit   `json:"units"`
}

// NewPlayer creates a player with fresh copies of the given unit templates
func NewPlayer(id PlayerID, name string, templates ...UnitTemplate) *Player {
	units := make([]Unit, len(templates))
	for i, t := range templates {
		units[i] = Unit{
			Name:          t.Name,
			JoinNumber:    t.JoinNumber,
			DefaultStatus: t.DefaultStatus,
			CurrentStatus: t.DefaultStatus,
		}
	}
	return &Player{PlayerID: id, Name: name, Units: units}
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	units := make([]Unit, len(p.Units))
	copy(units, p.Units)
	return &Player{PlayerID: p.PlayerID, Name: p.Name, Units: units}
}

// Unit returns the unit with the given join number, or nil
func (p *Player) Unit(joinNumber int) *Unit {
	for i := range p.Units {
		if p.Units[i].JoinNumber == joinNumber {
			return &p.Units[i]
		}
	}
	return nil
}

// AliveUnits returns the units that still have hp
func (p *Player) AliveUnits() []*Unit {
	var alive []*Unit
	for i := range p.Units {
		if !p.Units[i].IsDefeated() {
			alive = append(alive, &p.Units[i])
		}
	}
	return alive
}

// IsDefeated reports whether all of the player's units are down
func (p *Player) IsDefeated() bool {
	return len(p.AliveUnits()) == 0
}

// PlayerAccount holds the login data of a registered player
// Only the store and the account service read it
type PlayerAccount struct {
	PlayerID         PlayerID `json:"playerId"`
	Name             string   `json:"name"`
	UserName         string   `json:"userName"`
	UserPasswordHash string   `json:"userPasswordHash"`
}

// AccessToken binds a bearer token to the player who logged in
type AccessToken struct {
	Token     string    `json:"token"`
	PlayerID  PlayerID  `json:"playerId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoggedInPlayer is the result of a successful login
type LoggedInPlayer struct {
	PlayerID    PlayerID `json:"playerId"`
	Name        string   `json:"name"`
	UserName    string   `json:"userName"`
	AccessToken string   `json:"accessToken"`
}
