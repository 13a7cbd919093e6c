// Package seed loads the built-in reference formulary and treatment
// protocols, and optionally synthetic demo patients.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
	"github.com/ehr/advisor/internal/domain/protocol"
)

type MedicationStore interface {
	GetMedicationByName(ctx context.Context, name string) (*medication.Medication, error)
	CreateMedication(ctx context.Context, m *medication.Medication) error
}

type ProtocolStore interface {
	GetProtocol(ctx context.Context, id string) (*protocol.TreatmentProtocol, error)
	CreateProtocol(ctx context.Context, p *protocol.TreatmentProtocol) error
}

type PatientStore interface {
	Create(ctx context.Context, p *patient.Patient) error
}

// Config controls a seeding run. Patients is the number of synthetic
// patients to add; zero adds none.
type Config struct {
	Patients int
	Seed     int64
}

type Result struct {
	MedicationsCreated int `json:"medications_created"`
	MedicationsSkipped int `json:"medications_skipped"`
	ProtocolsCreated   int `json:"protocols_created"`
	ProtocolsSkipped   int `json:"protocols_skipped"`
	PatientsCreated    int `json:"patients_created"`
}

type Seeder struct {
	medications MedicationStore
	protocols   ProtocolStore
	patients    PatientStore
	logger      zerolog.Logger
	now         func() time.Time
}

func NewSeeder(meds MedicationStore, protocols ProtocolStore, patients PatientStore, logger zerolog.Logger) *Seeder {
	return &Seeder{
		medications: meds,
		protocols:   protocols,
		patients:    patients,
		logger:      logger.With().Str("component", "seed").Logger(),
		now:         time.Now,
	}
}

// Run writes reference data that is not there yet. Existing medications
// (by name) and protocols (by id) are left untouched, so Run is safe to
// repeat. Callers wanting all-or-nothing wrap it in db.WithTx.
func (s *Seeder) Run(ctx context.Context, cfg Config) (*Result, error) {
	res := &Result{}

	for _, m := range ReferenceMedications() {
		m := m
		_, err := s.medications.GetMedicationByName(ctx, m.Name)
		switch {
		case err == nil:
			res.MedicationsSkipped++
			continue
		case !errors.Is(err, medication.ErrNotFound):
			return res, fmt.Errorf("looking up medication %q: %w", m.Name, err)
		}
		if err := s.medications.CreateMedication(ctx, &m); err != nil {
			return res, fmt.Errorf("creating medication %q: %w", m.Name, err)
		}
		res.MedicationsCreated++
	}

	for _, p := range ReferenceProtocols() {
		p := p
		_, err := s.protocols.GetProtocol(ctx, p.ID)
		switch {
		case err == nil:
			res.ProtocolsSkipped++
			continue
		case !errors.Is(err, protocol.ErrNotFound):
			return res, fmt.Errorf("looking up protocol %q: %w", p.ID, err)
		}
		if err := s.protocols.CreateProtocol(ctx, &p); err != nil {
			return res, fmt.Errorf("creating protocol %q: %w", p.ID, err)
		}
		res.ProtocolsCreated++
	}

	if cfg.Patients > 0 {
		if s.patients == nil {
			return res, fmt.Errorf("patient seeding requested without a patient store")
		}
		gen := NewPatientGenerator(cfg.Seed, s.now())
		for i := 0; i < cfg.Patients; i++ {
			p := gen.Generate()
			if err := s.patients.Create(ctx, &p); err != nil {
				return res, fmt.Errorf("creating synthetic patient %d: %w", i+1, err)
			}
			res.PatientsCreated++
		}
	}

	s.logger.Info().
		Int("medications_created", res.MedicationsCreated).
		Int("medications_skipped", res.MedicationsSkipped).
		Int("protocols_created", res.ProtocolsCreated).
		Int("protocols_skipped", res.ProtocolsSkipped).
		Int("patients_created", res.PatientsCreated).
		Msg("seed complete")
	return res, nil
}
