package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ehr/advisor/internal/domain/patient"
	"github.com/ehr/advisor/internal/platform/cdshooks"
)

const (
	ServiceMedicationSafety = "medication-safety"
	ServiceDrugInteractions = "drug-interactions"

	hookOrderSelect = "order-select"
	cardSourceLabel = "Clinical Decision Support Advisor"
)

// RegisterCDSServices exposes the dose/safety screen and the interaction
// check as CDS Hooks services on h.
func (s *Service) RegisterCDSServices(h *cdshooks.Handler) {
	h.RegisterService(cdshooks.Service{
		Hook:        hookOrderSelect,
		Title:       "Medication Safety",
		Description: "Dose recommendation and allergy, organ-function and pregnancy screen for the selected medications",
		ID:          ServiceMedicationSafety,
	}, s.medicationSafetyCards)
	h.RegisterService(cdshooks.Service{
		Hook:        hookOrderSelect,
		Title:       "Drug Interactions",
		Description: "Drug-drug interaction check over draft orders and the patient's active medications",
		ID:          ServiceDrugInteractions,
	}, s.interactionCards)

	for _, id := range []string{ServiceMedicationSafety, ServiceDrugInteractions} {
		h.RegisterFeedback(id, s.logFeedback)
	}
}

func (s *Service) medicationSafetyCards(ctx context.Context, req cdshooks.Request) (*cdshooks.Response, error) {
	pt, card, err := s.hookPatient(ctx, req)
	if err != nil || card != nil {
		return single(card), err
	}

	resp := &cdshooks.Response{Cards: []cdshooks.Card{}}
	for _, name := range orderedMedications(req) {
		med, ok, err := s.lookup.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			resp.Cards = append(resp.Cards, newCard(cdshooks.IndicatorInfo,
				fmt.Sprintf("%s is not in the formulary", name), "No dosing or safety data is available."))
			continue
		}

		info := GetDrugSafetyInfo(s.rules, med, pt)
		if !info.SafeToUse {
			details := append(append([]string(nil), info.AllergyDetails...), info.Contraindications...)
			resp.Cards = append(resp.Cards, newCard(cdshooks.IndicatorCritical,
				fmt.Sprintf("%s may be unsafe for this patient", med.Name), strings.Join(details, "\n")))
		}

		dose, err := CalculateDose(s.rules, med, pt, "", s.now())
		if err != nil {
			resp.Cards = append(resp.Cards, newCard(cdshooks.IndicatorWarning,
				fmt.Sprintf("Dose for %s could not be calculated", med.Name), err.Error()))
			continue
		}
		indicator := cdshooks.IndicatorInfo
		if len(dose.Warnings) > 0 {
			indicator = cdshooks.IndicatorWarning
		}
		summary := fmt.Sprintf("%s: %s", med.Name, dose.RecommendedDose)
		if dose.RecommendedDose == "" {
			summary = fmt.Sprintf("%s: %s", med.Name, methodNoData)
		}
		detail := append(append([]string(nil), dose.Warnings...), dose.SpecialInstructions...)
		resp.Cards = append(resp.Cards, newCard(indicator, summary, strings.Join(detail, "\n")))
	}
	return resp, nil
}

func (s *Service) interactionCards(ctx context.Context, req cdshooks.Request) (*cdshooks.Response, error) {
	names := orderedMedications(req)
	if id, err := uuid.Parse(req.ContextString("patientId")); err == nil {
		pt, err := s.patients.GetByID(ctx, id)
		switch {
		case err == nil:
			names = append(names, pt.CurrentMedications...)
		case !errors.Is(err, patient.ErrNotFound):
			return nil, err
		}
	}

	report := CheckInteractionsByName(s.rules, names)
	resp := &cdshooks.Response{Cards: make([]cdshooks.Card, 0, report.Count())}
	for _, bucket := range []struct {
		severity Severity
		items    []Interaction
	}{
		{SeveritySevere, report.Severe},
		{SeverityModerate, report.Moderate},
		{SeverityMild, report.Mild},
	} {
		for _, ix := range bucket.items {
			detail := ix.Description
			if ix.Recommendation != "" {
				detail += "\n" + ix.Recommendation
			}
			resp.Cards = append(resp.Cards, newCard(indicatorFor(bucket.severity),
				fmt.Sprintf("%s interaction: %s + %s", bucket.severity, ix.Drug1, ix.Drug2), detail))
		}
	}
	return resp, nil
}

// hookPatient loads the hook's patient. An unknown or malformed patient id is
// reported as a card rather than an error.
func (s *Service) hookPatient(ctx context.Context, req cdshooks.Request) (*patient.Patient, *cdshooks.Card, error) {
	raw := req.ContextString("patientId")
	id, err := uuid.Parse(raw)
	if err != nil {
		c := newCard(cdshooks.IndicatorInfo, "Patient not identified", "The hook context has no valid patientId.")
		return nil, &c, nil
	}
	pt, err := s.patients.GetByID(ctx, id)
	if errors.Is(err, patient.ErrNotFound) {
		c := newCard(cdshooks.IndicatorInfo, "Patient not found", fmt.Sprintf("No patient record for %s.", raw))
		return nil, &c, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return pt, nil, nil
}

func (s *Service) logFeedback(_ context.Context, serviceID string, fb cdshooks.Feedback) error {
	s.logger.Info().
		Str("service", serviceID).
		Str("card", fb.Card).
		Str("outcome", fb.Outcome).
		Int("override_reasons", len(fb.OverrideReasons)).
		Msg("cds card feedback")
	return nil
}

// orderedMedications merges the selected medications and the draft orders,
// keeping the first occurrence of each name.
func orderedMedications(req cdshooks.Request) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range append(req.ContextStrings("selections"), req.DraftOrderMedications()...) {
		if k := normalize(n); k != "" && !seen[k] {
			seen[k] = true
			out = append(out, strings.TrimSpace(n))
		}
	}
	return out
}

func indicatorFor(sev Severity) string {
	switch sev {
	case SeveritySevere:
		return cdshooks.IndicatorCritical
	case SeverityModerate:
		return cdshooks.IndicatorWarning
	default:
		return cdshooks.IndicatorInfo
	}
}

func newCard(indicator, summary, detail string) cdshooks.Card {
	return cdshooks.Card{
		UUID:      uuid.NewString(),
		Summary:   summary,
		Detail:    detail,
		Indicator: indicator,
		Source:    cdshooks.Source{Label: cardSourceLabel},
	}
}

func single(card *cdshooks.Card) *cdshooks.Response {
	if card == nil {
		return nil
	}
	return &cdshooks.Response{Cards: []cdshooks.Card{*card}}
}
