package service

import (
	"strings"

	"github.com/rs/zerolog"

	"casepilot/models"
)

// Repository contracts consumed by the orchestration layer. The concrete
// implementations live in the repository package; tests inject fakes.
// Repository calls always succeed from the caller's point of view: a
// store failure surfaces as an empty or negative result, never as an
// error.
type ClientRepository interface {
	GetAll() []models.Client
	ExistsByIfa(ifaNumber string) bool
	Save(client models.Client)
	Update(client models.Client)
	DeleteByIfa(ifaNumber string)
}

type AppointmentRepository interface {
	GetAll() []models.Appointment
	GetByClientIfa(ifaNumber string) []models.Appointment
	Save(appointment models.Appointment) models.Appointment
	Update(appointment models.Appointment)
	Delete(id int)
}

type DocumentationRepository interface {
	GetAll() []models.Documentation
	GetByClientIfa(ifaNumber string) []models.Documentation
	Save(doc models.Documentation) models.Documentation
	Update(doc models.Documentation)
	Delete(id int)
}

type FileRecordRepository interface {
	GetByClientIfa(ifaNumber string) []models.FileRecord
	Save(file models.FileRecord) models.FileRecord
	Delete(id int) bool
}

type IfaGenerator interface {
	Generate() string
}

// ClientRecords bundles everything linked to one client's ifa number.
type ClientRecords struct {
	Appointments   []models.Appointment   `json:"appointments"`
	Documentations []models.Documentation `json:"documentations"`
	Files          []models.FileRecord    `json:"files"`
}

// DataService composes the four repositories into client-scoped views and
// upsert commands. All store access runs on the single shared handle, so
// calls are issued strictly one after another, never fanned out.
type DataService struct {
	clients        ClientRepository
	appointments   AppointmentRepository
	documentations DocumentationRepository
	files          FileRecordRepository
	generator      IfaGenerator
	log            zerolog.Logger
}

func NewDataService(
	clients ClientRepository,
	appointments AppointmentRepository,
	documentations DocumentationRepository,
	files FileRecordRepository,
	generator IfaGenerator,
	log zerolog.Logger,
) *DataService {
	return &DataService{
		clients:        clients,
		appointments:   appointments,
		documentations: documentations,
		files:          files,
		generator:      generator,
		log:            log.With().Str("service", "data").Logger(),
	}
}

// LoadForClient gathers the appointments, documentations and files linked
// to one ifa number. The three loads are independent: a failure in one
// yields an empty collection for that entity and does not touch the
// others.
func (s *DataService) LoadForClient(ifaNumber string) ClientRecords {
	return ClientRecords{
		Appointments:   load(s.log, "appointments for client", func() []models.Appointment { return s.appointments.GetByClientIfa(ifaNumber) }),
		Documentations: load(s.log, "documentations for client", func() []models.Documentation { return s.documentations.GetByClientIfa(ifaNumber) }),
		Files:          load(s.log, "files for client", func() []models.FileRecord { return s.files.GetByClientIfa(ifaNumber) }),
	}
}

func (s *DataService) LoadClients() []models.Client {
	return load(s.log, "clients", s.clients.GetAll)
}

func (s *DataService) LoadAppointments() []models.Appointment {
	return load(s.log, "appointments", s.appointments.GetAll)
}

// LoadOpenAppointments returns the appointments whose status is "Offen",
// compared case-insensitively.
func (s *DataService) LoadOpenAppointments() []models.Appointment {
	return load(s.log, "open appointments", func() []models.Appointment {
		var open []models.Appointment
		for _, a := range s.appointments.GetAll() {
			if strings.EqualFold(a.Status, models.StatusOpen) {
				open = append(open, a)
			}
		}
		return open
	})
}

func (s *DataService) LoadAppointmentsForClient(ifaNumber string) []models.Appointment {
	return load(s.log, "appointments for client", func() []models.Appointment { return s.appointments.GetByClientIfa(ifaNumber) })
}

func (s *DataService) LoadDocumentations() []models.Documentation {
	return load(s.log, "documentations", s.documentations.GetAll)
}

func (s *DataService) LoadDocumentationsForClient(ifaNumber string) []models.Documentation {
	return load(s.log, "documentations for client", func() []models.Documentation { return s.documentations.GetByClientIfa(ifaNumber) })
}

func (s *DataService) LoadFilesForClient(ifaNumber string) []models.FileRecord {
	return load(s.log, "files for client", func() []models.FileRecord { return s.files.GetByClientIfa(ifaNumber) })
}

// SaveOrUpdateClient inserts the client when its ifa number is unknown and
// updates the existing row otherwise. The existence check and the write
// are two separate store calls with no transaction around them; a caller
// racing another writer between the two gets last-write-wins behavior.
func (s *DataService) SaveOrUpdateClient(client models.Client) {
	if s.clients.ExistsByIfa(client.IfaNumber) {
		s.clients.Update(client)
		s.log.Info().Str("ifa_number", client.IfaNumber).Msg("existing client updated")
		return
	}
	s.clients.Save(client)
	s.log.Info().Str("ifa_number", client.IfaNumber).Msg("new client saved")
}

func (s *DataService) DeleteClient(ifaNumber string) {
	s.clients.DeleteByIfa(ifaNumber)
}

// ResetForm returns the canonical empty client form state: cleared text
// fields, zero birth date, unselected choice values and a freshly
// generated ifa number. This is the only place a new client identifier is
// drawn.
func (s *DataService) ResetForm() models.Client {
	ifa := s.generator.Generate()
	s.log.Info().Str("ifa_number", ifa).Msg("generated ifa number for new client form")
	return models.Client{
		IfaNumber:          ifa,
		Gender:             models.ChoiceUnset,
		RelationshipStatus: models.ChoiceUnset,
	}
}

func (s *DataService) SaveAppointment(appointment models.Appointment) models.Appointment {
	saved := s.appointments.Save(appointment)
	s.log.Info().Int("appointment_id", saved.ID).Msg("appointment save requested")
	return saved
}

func (s *DataService) UpdateAppointment(appointment models.Appointment) {
	s.appointments.Update(appointment)
}

func (s *DataService) DeleteAppointment(id int) {
	s.appointments.Delete(id)
}

func (s *DataService) SaveDocumentation(doc models.Documentation) models.Documentation {
	saved := s.documentations.Save(doc)
	s.log.Info().Int("documentation_id", saved.ID).Msg("documentation save requested")
	return saved
}

func (s *DataService) UpdateDocumentation(doc models.Documentation) {
	s.documentations.Update(doc)
}

func (s *DataService) DeleteDocumentation(id int) {
	s.documentations.Delete(id)
}

func (s *DataService) SaveFileRecord(file models.FileRecord) models.FileRecord {
	saved := s.files.Save(file)
	s.log.Info().Int("document_id", saved.ID).Msg("file record save requested")
	return saved
}

func (s *DataService) DeleteFileRecord(id int) bool {
	return s.files.Delete(id)
}

// load is the uniform guard around every read: it logs with context and
// yields an empty collection instead of propagating anything, and it
// never hands a nil slice to a view.
func load[T any](log zerolog.Logger, what string, fn func() []T) (items []T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("loading", what).Msg("load failed")
			items = []T{}
		}
	}()
	items = fn()
	if items == nil {
		items = []T{}
	}
	return items
}
