package models

import (
	"errors"
	"time"
)

// Choice values as they are stored in the database and shown in forms.
// "Bitte auswählen..." is the unselected sentinel and must never reach
// the store.
const (
	ChoiceUnset = "Bitte auswählen..."

	GenderMale    = "Männlich"
	GenderFemale  = "Weiblich"
	GenderDiverse = "Divers"

	RelationshipMarried = "Verheiratet"
	RelationshipSingle  = "Ledig"
	RelationshipWidowed = "Verwitwet"
)

var (
	ErrMissingIfaNumber        = errors.New("client ifa number is required")
	ErrGenderNotSelected       = errors.New("gender has not been selected")
	ErrRelationshipNotSelected = errors.New("relationship status has not been selected")
)

// Client is a case record identified by a six-digit ifa number. The ifa
// number is assigned before the first save and never changes afterwards.
type Client struct {
	IfaNumber          string    `gorm:"column:ifa_number;primaryKey;size:6" json:"ifa_number"`
	LastName           string    `gorm:"column:last_name;not null" json:"last_name"`
	FirstName          string    `gorm:"column:first_name;not null" json:"first_name"`
	BirthDate          time.Time `gorm:"column:birth_date;type:date" json:"birth_date"`
	Gender             string    `gorm:"column:gender;not null" json:"gender"`
	Nationality        string    `gorm:"column:nationality" json:"nationality"`
	RelationshipStatus string    `gorm:"column:relationship_status;not null" json:"relationship_status"`
}

func (Client) TableName() string { return "client" }

// Validate rejects clients that are not ready to be persisted. This runs
// at the caller boundary; repositories assume validated input.
func (c Client) Validate() error {
	if c.IfaNumber == "" {
		return ErrMissingIfaNumber
	}
	if c.Gender == "" || c.Gender == ChoiceUnset {
		return ErrGenderNotSelected
	}
	if c.RelationshipStatus == "" || c.RelationshipStatus == ChoiceUnset {
		return ErrRelationshipNotSelected
	}
	return nil
}
