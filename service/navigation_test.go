package service

import (
	"testing"

	"github.com/rs/zerolog"

	"casepilot/models"
)

func newRecordingNavigator() (*Navigator, *[]ViewContext) {
	var seen []ViewContext
	nav := NewNavigator(func(ctx ViewContext) {
		seen = append(seen, ctx)
	}, zerolog.Nop())
	return nav, &seen
}

func TestGoToClientDetailCarriesName(t *testing.T) {
	nav, seen := newRecordingNavigator()

	nav.GoToClientDetail(models.Client{
		IfaNumber: "123456",
		LastName:  "Muster",
		FirstName: "Anna",
	})

	if len(*seen) != 1 {
		t.Fatalf("apply called %d times, want 1", len(*seen))
	}
	got := (*seen)[0]
	if got.View != ViewClient {
		t.Errorf("view = %q, want %q", got.View, ViewClient)
	}
	if got.IfaNumber != "123456" || got.LastName != "Muster" || got.FirstName != "Anna" {
		t.Errorf("context = %+v, want client identity carried over", got)
	}
}

func TestGoToAppointmentDetailUsesJoinedNames(t *testing.T) {
	nav, seen := newRecordingNavigator()

	nav.GoToAppointmentDetail(models.Appointment{
		ID:              7,
		ClientIfaNumber: "123456",
		ClientLastName:  "Muster",
		ClientFirstName: "Anna",
	})

	got := (*seen)[0]
	if got.View != ViewAppointment {
		t.Errorf("view = %q, want %q", got.View, ViewAppointment)
	}
	if got.IfaNumber != "123456" || got.LastName != "Muster" || got.FirstName != "Anna" {
		t.Errorf("context = %+v, want owning client resolved from the appointment", got)
	}
}

func TestGoToDocumentationsForCarriesIfaOnly(t *testing.T) {
	nav, seen := newRecordingNavigator()

	nav.GoToDocumentationsFor(models.Documentation{ClientIfaNumber: "123456", Title: "Notiz"})

	got := (*seen)[0]
	if got.View != ViewDocumentation {
		t.Errorf("view = %q, want %q", got.View, ViewDocumentation)
	}
	if got.IfaNumber != "123456" {
		t.Errorf("ifa number = %q, want 123456", got.IfaNumber)
	}
	if got.LastName != "" || got.FirstName != "" {
		t.Errorf("documentation context should not carry names, got %+v", got)
	}
}

func TestGoToFilesForScopesRawIfa(t *testing.T) {
	nav, seen := newRecordingNavigator()

	nav.GoToFilesFor("654321")

	got := (*seen)[0]
	if got.View != ViewFile || got.IfaNumber != "654321" {
		t.Errorf("context = %+v, want file view for 654321", got)
	}
}

func TestGoToWithoutApplyDoesNotPanic(t *testing.T) {
	nav := NewNavigator(nil, zerolog.Nop())
	nav.GoTo(IfaContext(ViewHome, ""))
}
