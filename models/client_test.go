package models

import (
	"errors"
	"testing"
	"time"
)

func validClient() Client {
	return Client{
		IfaNumber:          "123456",
		LastName:           "Muster",
		FirstName:          "Anna",
		BirthDate:          time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Nationality:        "DE",
		Gender:             GenderFemale,
		RelationshipStatus: RelationshipSingle,
	}
}

func TestClientValidateAccepts(t *testing.T) {
	if err := validClient().Validate(); err != nil {
		t.Errorf("valid client rejected: %v", err)
	}
}

func TestClientValidateRejectsMissingIfaNumber(t *testing.T) {
	c := validClient()
	c.IfaNumber = ""
	if err := c.Validate(); !errors.Is(err, ErrMissingIfaNumber) {
		t.Errorf("Validate() = %v, want ErrMissingIfaNumber", err)
	}
}

func TestClientValidateRejectsUnsetChoices(t *testing.T) {
	c := validClient()
	c.Gender = ChoiceUnset
	if err := c.Validate(); !errors.Is(err, ErrGenderNotSelected) {
		t.Errorf("Validate() = %v, want ErrGenderNotSelected", err)
	}

	c = validClient()
	c.RelationshipStatus = ChoiceUnset
	if err := c.Validate(); !errors.Is(err, ErrRelationshipNotSelected) {
		t.Errorf("Validate() = %v, want ErrRelationshipNotSelected", err)
	}

	c = validClient()
	c.Gender = ""
	if err := c.Validate(); !errors.Is(err, ErrGenderNotSelected) {
		t.Errorf("Validate() with empty gender = %v, want ErrGenderNotSelected", err)
	}
}
