// Package advisory is the rule-based decision-support engine: dose
// calculation, allergy and cross-reactivity screening, drug-drug interaction
// detection and protocol recommendations. The engine functions are pure; the
// Service wraps them with repository access and logging.
package advisory

import (
	"github.com/ehr/advisor/internal/domain/medication"
)

// Disclaimer is attached to every payload the engine produces.
const Disclaimer = "This information is clinical decision support for reference only and is not a substitute for professional medical judgment."

type Severity string

const (
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
)

// InteractionRule fires for a pair of medication names when one name contains
// a Drug1 pattern and the other contains a Drug2 pattern.
type InteractionRule struct {
	ID             string
	Drug1Patterns  []string
	Drug2Patterns  []string
	Severity       Severity
	Description    string
	Recommendation string
}

// CrossReactivity maps an allergen class to substrings of related drug names.
type CrossReactivity struct {
	Class   string
	Related []string
}

// RuleSet holds the fixed reference tables the engine evaluates. It is built
// once by DefaultRules and never mutated afterwards; accessors return copies.
type RuleSet struct {
	interactions    []InteractionRule
	crossReactivity []CrossReactivity
	pregnancyText   map[medication.PregnancyCategory]string
}

var (
	anticoagulants   = []string{"warfarin", "coumadin", "apixaban", "rivaroxaban", "dabigatran"}
	nsaids           = []string{"aspirin", "ibuprofen", "naproxen", "diclofenac", "ketorolac", "celecoxib", "meloxicam"}
	nitrates         = []string{"nitroglycerin", "isosorbide"}
	pde5Inhibitors   = []string{"sildenafil", "tadalafil", "vardenafil", "avanafil"}
	alphaBlockers    = []string{"tamsulosin", "doxazosin", "terazosin", "alfuzosin"}
	serotonergics    = []string{"fluoxetine", "sertraline", "paroxetine", "citalopram", "escitalopram", "venlafaxine", "duloxetine", "tramadol"}
	maoInhibitors    = []string{"phenelzine", "tranylcypromine", "isocarboxazid", "selegiline", "linezolid"}
	statins          = []string{"simvastatin", "lovastatin", "atorvastatin"}
	cyp3a4Inhibitors = []string{"clarithromycin", "erythromycin", "ketoconazole", "itraconazole", "ritonavir", "cobicistat"}
	opioids          = []string{"morphine", "oxycodone", "hydrocodone", "hydromorphone", "fentanyl", "codeine", "methadone"}
	benzodiazepines  = []string{"diazepam", "lorazepam", "alprazolam", "clonazepam", "midazolam"}
	aceInhibitors    = []string{"lisinopril", "enalapril", "ramipril", "captopril", "benazepril"}
	potassiumRaising = []string{"spironolactone", "eplerenone", "amiloride", "triamterene", "potassium chloride"}
	methotrexate     = []string{"methotrexate"}
	antifolates      = []string{"trimethoprim", "sulfamethoxazole"}
	digoxin          = []string{"digoxin"}
	digoxinRaising   = []string{"amiodarone", "verapamil", "dronedarone"}
	betaAgonists     = []string{"albuterol", "salbutamol", "salmeterol", "formoterol"}
	nonselectiveBeta = []string{"propranolol", "nadolol", "sotalol", "timolol"}
	fluoroquinolones = []string{"ciprofloxacin", "levofloxacin", "moxifloxacin"}
	polyvalentCation = []string{"antacid", "calcium carbonate", "magnesium hydroxide", "aluminum hydroxide", "ferrous sulfate"}
	levothyroxine    = []string{"levothyroxine"}
	bindingAgents    = []string{"calcium carbonate", "ferrous sulfate", "cholestyramine"}
)

// DefaultRules builds the built-in rule tables.
func DefaultRules() *RuleSet {
	return &RuleSet{
		interactions: []InteractionRule{
			{
				ID: "anticoagulant+nsaid", Drug1Patterns: anticoagulants, Drug2Patterns: nsaids, Severity: SeveritySevere,
				Description:    "Additive bleeding risk from combined anticoagulant and antiplatelet/NSAID effects.",
				Recommendation: "Avoid combination; if unavoidable, monitor INR and signs of bleeding closely.",
			},
			{
				ID: "nitrate+pde5i", Drug1Patterns: nitrates, Drug2Patterns: pde5Inhibitors, Severity: SeveritySevere,
				Description:    "Risk of profound hypotension.",
				Recommendation: "Contraindicated; do not co-administer.",
			},
			{
				ID: "serotonergic+maoi", Drug1Patterns: serotonergics, Drug2Patterns: maoInhibitors, Severity: SeveritySevere,
				Description:    "Risk of serotonin syndrome.",
				Recommendation: "Contraindicated; allow an adequate washout period between agents.",
			},
			{
				ID: "statin+cyp3a4i", Drug1Patterns: statins, Drug2Patterns: cyp3a4Inhibitors, Severity: SeveritySevere,
				Description:    "Raised statin levels increase the risk of myopathy and rhabdomyolysis.",
				Recommendation: "Suspend the statin during therapy or choose a non-interacting alternative.",
			},
			{
				ID: "opioid+benzodiazepine", Drug1Patterns: opioids, Drug2Patterns: benzodiazepines, Severity: SeveritySevere,
				Description:    "Additive CNS and respiratory depression.",
				Recommendation: "Avoid concurrent use; if required, use the lowest doses and monitor respiration.",
			},
			{
				ID: "methotrexate+antifolate", Drug1Patterns: methotrexate, Drug2Patterns: antifolates, Severity: SeveritySevere,
				Description:    "Additive antifolate effect with risk of bone marrow suppression.",
				Recommendation: "Avoid combination; monitor blood counts if co-prescribed.",
			},
			{
				ID: "alpha-blocker+pde5i", Drug1Patterns: alphaBlockers, Drug2Patterns: pde5Inhibitors, Severity: SeverityModerate,
				Description:    "Additive hypotension.",
				Recommendation: "Separate dosing and start with the lowest dose.",
			},
			{
				ID: "ace-inhibitor+potassium", Drug1Patterns: aceInhibitors, Drug2Patterns: potassiumRaising, Severity: SeverityModerate,
				Description:    "Risk of hyperkalemia.",
				Recommendation: "Monitor serum potassium and renal function.",
			},
			{
				ID: "ace-inhibitor+nsaid", Drug1Patterns: aceInhibitors, Drug2Patterns: nsaids, Severity: SeverityModerate,
				Description:    "Reduced antihypertensive effect and risk of acute kidney injury.",
				Recommendation: "Monitor blood pressure and renal function; limit NSAID duration.",
			},
			{
				ID: "digoxin+raising", Drug1Patterns: digoxin, Drug2Patterns: digoxinRaising, Severity: SeverityModerate,
				Description:    "Raised digoxin levels with risk of toxicity.",
				Recommendation: "Reduce digoxin dose and monitor levels.",
			},
			{
				ID: "beta-agonist+nonselective-beta-blocker", Drug1Patterns: betaAgonists, Drug2Patterns: nonselectiveBeta, Severity: SeverityModerate,
				Description:    "Beta-blockade antagonises bronchodilation and may provoke bronchospasm.",
				Recommendation: "Prefer a cardioselective beta-blocker in patients with reactive airways.",
			},
			{
				ID: "fluoroquinolone+cation", Drug1Patterns: fluoroquinolones, Drug2Patterns: polyvalentCation, Severity: SeverityMild,
				Description: "Reduced fluoroquinolone absorption; separate administration by at least 2 hours.",
			},
			{
				ID: "levothyroxine+binder", Drug1Patterns: levothyroxine, Drug2Patterns: bindingAgents, Severity: SeverityMild,
				Description: "Reduced levothyroxine absorption; separate administration by at least 4 hours.",
			},
		},
		crossReactivity: []CrossReactivity{
			{Class: "penicillin", Related: []string{"amoxicillin", "ampicillin", "piperacillin", "nafcillin", "dicloxacillin", "cephalosporin", "cephalexin", "cefazolin"}},
			{Class: "cephalosporin", Related: []string{"cephalexin", "cefazolin", "ceftriaxone", "cefuroxime", "cefdinir", "penicillin"}},
			{Class: "sulfa", Related: []string{"sulfamethoxazole", "sulfasalazine", "sulfadiazine"}},
			{Class: "aspirin", Related: []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac"}},
			{Class: "nsaid", Related: []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "aspirin", "meloxicam"}},
			{Class: "codeine", Related: []string{"morphine", "hydrocodone", "oxycodone"}},
		},
		pregnancyText: map[medication.PregnancyCategory]string{
			medication.PregnancyA: "Category A: controlled human studies show no risk to the fetus.",
			medication.PregnancyB: "Category B: no evidence of risk in animal studies; adequate human studies are lacking.",
			medication.PregnancyC: "Category C: risk cannot be ruled out; use only if the benefit justifies the potential fetal risk.",
			medication.PregnancyD: "Category D: positive evidence of human fetal risk; use only when no safer alternative exists.",
			medication.PregnancyX: "Category X: contraindicated in pregnancy; fetal risk clearly outweighs any benefit.",
		},
	}
}

const unclassifiedPregnancyText = "Pregnancy category not classified; consult physician before use in pregnancy."

// InteractionRules returns a copy of the interaction table.
func (r *RuleSet) InteractionRules() []InteractionRule {
	out := make([]InteractionRule, len(r.interactions))
	for i, rule := range r.interactions {
		rule.Drug1Patterns = append([]string(nil), rule.Drug1Patterns...)
		rule.Drug2Patterns = append([]string(nil), rule.Drug2Patterns...)
		out[i] = rule
	}
	return out
}

// CrossReactivityTable returns a copy of the cross-reactivity table.
func (r *RuleSet) CrossReactivityTable() []CrossReactivity {
	out := make([]CrossReactivity, len(r.crossReactivity))
	for i, cr := range r.crossReactivity {
		cr.Related = append([]string(nil), cr.Related...)
		out[i] = cr
	}
	return out
}

// PregnancyText returns the explanation for a pregnancy category.
func (r *RuleSet) PregnancyText(c medication.PregnancyCategory) string {
	if text, ok := r.pregnancyText[c.Normalize()]; ok {
		return text
	}
	return unclassifiedPregnancyText
}
