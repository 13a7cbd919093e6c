package advisory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/advisor/internal/domain"
	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
	"github.com/ehr/advisor/internal/domain/protocol"
)

// SubjectRequest names the medication and the patient an advisory is for.
// Stored records are referenced by id (or medication name); inline records
// are used as given.
type SubjectRequest struct {
	MedicationID   *uuid.UUID             `json:"medication_id,omitempty"`
	MedicationName string                 `json:"medication_name,omitempty"`
	Medication     *medication.Medication `json:"medication,omitempty"`
	PatientID      *uuid.UUID             `json:"patient_id,omitempty"`
	Patient        *patient.Patient       `json:"patient,omitempty"`
}

type DoseRequest struct {
	SubjectRequest
	Indication string `json:"indication,omitempty"`
}

type InteractionsRequest struct {
	Medications []string   `json:"medications"`
	PatientID   *uuid.UUID `json:"patient_id,omitempty"`
}

type ProtocolRequest struct {
	Query          string          `json:"query"`
	PatientID      *uuid.UUID      `json:"patient_id,omitempty"`
	PatientContext *PatientContext `json:"patient_context,omitempty"`
}

// Service resolves stored records and runs the engine over them.
type Service struct {
	medications medication.MedicationRepository
	lookup      *medication.CachedLookup
	patients    patient.PatientRepository
	protocols   protocol.ProtocolRepository
	rules       *RuleSet
	logger      zerolog.Logger
	now         func() time.Time
}

func NewService(
	meds medication.MedicationRepository,
	lookup *medication.CachedLookup,
	patients patient.PatientRepository,
	protocols protocol.ProtocolRepository,
	rules *RuleSet,
	logger zerolog.Logger,
) *Service {
	return &Service{
		medications: meds,
		lookup:      lookup,
		patients:    patients,
		protocols:   protocols,
		rules:       rules,
		logger:      logger.With().Str("component", "advisory").Logger(),
		now:         time.Now,
	}
}

// Rules returns the rule set the service evaluates.
func (s *Service) Rules() *RuleSet {
	return s.rules
}

func (s *Service) Dose(ctx context.Context, req DoseRequest) (*DoseResult, error) {
	med, pt, err := s.resolveSubject(ctx, req.SubjectRequest)
	if err != nil {
		return nil, err
	}
	res, err := CalculateDose(s.rules, med, pt, req.Indication, s.now())
	if err != nil {
		s.logger.Warn().Err(err).Str("medication", med.Name).Msg("dose calculation rejected")
		return nil, err
	}

	s.logger.Debug().
		Str("medication", med.Name).
		Str("method", res.CalculationMethod).
		Int("warnings", len(res.Warnings)).
		Msg("dose computed")
	if res.Contraindicated {
		s.logger.Info().
			Str("medication", med.Name).
			Int("reasons", len(res.ContraindicationReasons)).
			Msg("contraindication flagged")
	}
	return res, nil
}

func (s *Service) Safety(ctx context.Context, req SubjectRequest) (*SafetyInfo, error) {
	med, pt, err := s.resolveSubject(ctx, req)
	if err != nil {
		return nil, err
	}
	info := GetDrugSafetyInfo(s.rules, med, pt)
	if !info.SafeToUse {
		s.logger.Info().
			Str("medication", med.Name).
			Bool("allergy_risk", info.AllergyRisk).
			Int("contraindications", len(info.Contraindications)).
			Msg("medication flagged unsafe")
	}
	return info, nil
}

// Interactions checks the requested names, followed by the patient's current
// medications when a patient is given.
func (s *Service) Interactions(ctx context.Context, req InteractionsRequest) (*InteractionReport, error) {
	names := append([]string(nil), req.Medications...)
	if req.PatientID != nil {
		pt, err := s.patients.GetByID(ctx, *req.PatientID)
		if err != nil {
			return nil, err
		}
		names = append(names, pt.CurrentMedications...)
	}

	report := CheckInteractionsByName(s.rules, names)
	if report.HasInteractions() {
		s.logger.Info().
			Int("medications", len(names)).
			Int("severe", len(report.Severe)).
			Int("moderate", len(report.Moderate)).
			Int("mild", len(report.Mild)).
			Msg("interactions found")
	}
	return report, nil
}

// Protocol matches the query against stored protocols and annotates the
// first-line medications for the patient. A stored patient takes precedence
// over an inline patient context.
func (s *Service) Protocol(ctx context.Context, req ProtocolRequest) (*ProtocolRecommendation, error) {
	var pc PatientContext
	switch {
	case req.PatientID != nil:
		pt, err := s.patients.GetByID(ctx, *req.PatientID)
		if err != nil {
			return nil, err
		}
		pc = PatientContext{Allergies: pt.Allergies, CurrentMedications: pt.CurrentMedications, IsPregnant: pt.IsPregnant}
	case req.PatientContext != nil:
		pc = *req.PatientContext
	}

	protocols, err := s.protocols.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load protocols: %w", err)
	}

	catalog := MapCatalog{}
	if p, ok := protocol.Match(protocols, req.Query); ok {
		if catalog, err = s.prefetch(ctx, p.FirstLine); err != nil {
			return nil, err
		}
	}

	rec := GetProtocolRecommendation(s.rules, protocols, req.Query, pc, catalog)
	if !rec.Found {
		s.logger.Info().Str("query", req.Query).Msg("protocol not matched")
		return rec, nil
	}
	s.logger.Debug().
		Str("protocol", rec.Protocol.ID).
		Int("recommended", len(rec.RecommendedMedications)).
		Int("safe", len(rec.SafeMedications)).
		Msg("protocol recommendation built")
	return rec, nil
}

// prefetch resolves protocol entries through the lookup cache so the engine
// can run without I/O. Unknown names are left out of the catalog.
func (s *Service) prefetch(ctx context.Context, entries []protocol.MedicationEntry) (MapCatalog, error) {
	catalog := make(MapCatalog, len(entries))
	for _, e := range entries {
		m, ok, err := s.lookup.FindByName(ctx, e.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			catalog[normalize(e.Name)] = m
		}
	}
	return catalog, nil
}

func (s *Service) resolveSubject(ctx context.Context, req SubjectRequest) (*medication.Medication, *patient.Patient, error) {
	var med *medication.Medication
	switch {
	case req.MedicationID != nil:
		m, err := s.medications.GetByID(ctx, *req.MedicationID)
		if err != nil {
			return nil, nil, err
		}
		med = m
	case req.MedicationName != "":
		m, ok, err := s.lookup.FindByName(ctx, req.MedicationName)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, medication.ErrNotFound
		}
		med = m
	case req.Medication != nil:
		med = req.Medication
	default:
		return nil, nil, domain.NewValidationError("medication", "medication_id, medication_name or medication is required", nil)
	}

	var pt *patient.Patient
	switch {
	case req.PatientID != nil:
		p, err := s.patients.GetByID(ctx, *req.PatientID)
		if err != nil {
			return nil, nil, err
		}
		pt = p
	case req.Patient != nil:
		pt = req.Patient
	default:
		return nil, nil, domain.NewValidationError("patient", "patient_id or patient is required", nil)
	}
	return med, pt, nil
}
