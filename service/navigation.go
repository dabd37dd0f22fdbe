package service

import (
	"github.com/rs/zerolog"

	"casepilot/models"
)

// View names the destinations a caseworker can move between.
type View string

const (
	ViewHome          View = "home"
	ViewClient        View = "client"
	ViewAppointment   View = "appointment"
	ViewDocumentation View = "documentation"
	ViewFile          View = "file"
)

// ViewContext is the minimal payload a destination view needs to
// initialize itself: the owning client's ifa number and, where a record
// carries them, the client's display name.
type ViewContext struct {
	View      View   `json:"view"`
	IfaNumber string `json:"ifa_number"`
	LastName  string `json:"last_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// ClientContext scopes a destination view to a client record.
func ClientContext(view View, client models.Client) ViewContext {
	return ViewContext{
		View:      view,
		IfaNumber: client.IfaNumber,
		LastName:  client.LastName,
		FirstName: client.FirstName,
	}
}

// AppointmentContext resolves an appointment down to its owning client,
// using the denormalized name columns carried by the join.
func AppointmentContext(view View, appointment models.Appointment) ViewContext {
	return ViewContext{
		View:      view,
		IfaNumber: appointment.ClientIfaNumber,
		LastName:  appointment.ClientLastName,
		FirstName: appointment.ClientFirstName,
	}
}

// DocumentationContext resolves a case note down to its owning client.
// Documentations carry no client name, only the ifa number.
func DocumentationContext(view View, doc models.Documentation) ViewContext {
	return ViewContext{View: view, IfaNumber: doc.ClientIfaNumber}
}

// IfaContext scopes a destination view to a raw ifa number.
func IfaContext(view View, ifaNumber string) ViewContext {
	return ViewContext{View: view, IfaNumber: ifaNumber}
}

// Navigator carries view contexts across view boundaries. It owns no data
// and never touches the store; the presentation layer supplies the apply
// callback that configures the next view.
type Navigator struct {
	apply func(ViewContext)
	log   zerolog.Logger
}

func NewNavigator(apply func(ViewContext), log zerolog.Logger) *Navigator {
	return &Navigator{apply: apply, log: log.With().Str("service", "navigation").Logger()}
}

// GoTo forwards the context to the configured callback.
func (n *Navigator) GoTo(ctx ViewContext) {
	n.log.Info().
		Str("view", string(ctx.View)).
		Str("ifa_number", ctx.IfaNumber).
		Msg("navigating")
	if n.apply != nil {
		n.apply(ctx)
	}
}

func (n *Navigator) GoToClientDetail(client models.Client) {
	n.GoTo(ClientContext(ViewClient, client))
}

func (n *Navigator) GoToAppointmentDetail(appointment models.Appointment) {
	n.GoTo(AppointmentContext(ViewAppointment, appointment))
}

func (n *Navigator) GoToDocumentationsFor(doc models.Documentation) {
	n.GoTo(DocumentationContext(ViewDocumentation, doc))
}

func (n *Navigator) GoToFilesFor(ifaNumber string) {
	n.GoTo(IfaContext(ViewFile, ifaNumber))
}
