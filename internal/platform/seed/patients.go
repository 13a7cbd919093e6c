package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ehr/advisor/internal/domain/patient"
)

var (
	firstNames = []string{
		"James", "Maria", "Robert", "Aisha", "Michael", "Elena", "David", "Priya",
		"Thomas", "Fatima", "Daniel", "Grace", "Samuel", "Hana", "Joseph", "Chloe",
	}
	lastNames = []string{
		"Smith", "Garcia", "Okafor", "Nguyen", "Johnson", "Patel", "Kowalski",
		"Brown", "Silva", "Haddad", "Martin", "Kim", "Walker", "Rossi",
	}
	allergyPool = []string{
		"penicillin", "sulfa", "aspirin", "codeine", "latex", "cephalosporin", "shellfish",
	}
	conditionPool = []string{
		"hypertension", "type 2 diabetes", "asthma", "chronic kidney disease",
		"atrial fibrillation", "osteoarthritis", "fatty liver disease", "hypothyroidism",
	}
	currentMedicationPool = []string{
		"warfarin", "lisinopril", "metformin", "levothyroxine", "atorvastatin",
		"sertraline", "omeprazole", "amlodipine",
	}
	functionQualifiers = []string{"", "", "", "normal", "mild impairment", "moderate impairment"}
)

// PatientGenerator produces reproducible synthetic patients for demo and
// integration environments. The same seed always yields the same sequence.
type PatientGenerator struct {
	rng *rand.Rand
	now time.Time
}

// NewPatientGenerator seeds the generator; seed 0 picks a time-based seed.
// Ages are computed relative to now.
func NewPatientGenerator(seed int64, now time.Time) *PatientGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PatientGenerator{rng: rand.New(rand.NewSource(seed)), now: now}
}

func (g *PatientGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// sample draws up to n distinct entries.
func (g *PatientGenerator) sample(pool []string, n int) []string {
	out := []string{}
	for _, i := range g.rng.Perm(len(pool)) {
		if len(out) == n {
			break
		}
		out = append(out, pool[i])
	}
	return out
}

func (g *PatientGenerator) birthDate(minAge, maxAge int) string {
	age := minAge + g.rng.Intn(maxAge-minAge+1)
	dob := g.now.AddDate(-age, -g.rng.Intn(12), -g.rng.Intn(28))
	return dob.Format("2006-01-02")
}

// weightFor returns a plausible weight for the age, or nil for roughly one
// patient in ten so weight-less dosing paths get exercised.
func (g *PatientGenerator) weightFor(age int) *float64 {
	if g.rng.Intn(10) == 0 {
		return nil
	}
	var kg float64
	switch {
	case age < 2:
		kg = 4 + g.rng.Float64()*8
	case age < 18:
		kg = 2*float64(age) + 8 + g.rng.Float64()*10
	default:
		kg = 50 + g.rng.Float64()*50
	}
	kg = float64(int(kg*10)) / 10
	return &kg
}

// Generate returns one synthetic patient spread across pediatric, adult and
// geriatric ages. Only adults under 45 are ever flagged pregnant.
func (g *PatientGenerator) Generate() patient.Patient {
	var dob string
	switch g.rng.Intn(4) {
	case 0:
		dob = g.birthDate(1, 17)
	case 3:
		dob = g.birthDate(65, 92)
	default:
		dob = g.birthDate(18, 64)
	}
	profile, _ := patient.ResolveAge(dob, g.now)

	id, _ := uuid.NewRandomFromReader(g.rng)
	p := patient.Patient{
		ID:                 id,
		Name:               fmt.Sprintf("%s %s", g.pick(firstNames), g.pick(lastNames)),
		DateOfBirth:        dob,
		Weight:             g.weightFor(profile.Years),
		Allergies:          g.sample(allergyPool, g.rng.Intn(3)),
		ChronicConditions:  []string{},
		CurrentMedications: []string{},
		RenalFunction:      g.pick(functionQualifiers),
		HepaticFunction:    g.pick(functionQualifiers),
	}
	if !profile.Pediatric {
		p.ChronicConditions = g.sample(conditionPool, g.rng.Intn(3))
		p.CurrentMedications = g.sample(currentMedicationPool, g.rng.Intn(4))
		p.IsPregnant = profile.Years < 45 && g.rng.Intn(8) == 0
	}
	return p
}
