package topic

// Keywords holds one category's keyword tiers. High-tier terms identify
// the category on their own; low-tier terms only nudge.
type Keywords struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
	Low    []string `yaml:"low"`
}

// Weights maps keyword tiers to score contributions.
type Weights struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

// DefaultWeights returns the standard 3/2/1 tier weighting.
func DefaultWeights() Weights {
	return Weights{High: 3, Medium: 2, Low: 1}
}

// DefaultKeywordTable returns the built-in per-category keyword tiers.
// Plural forms are listed explicitly where they are expected in prose;
// matching is whole-word, so "researchers" never fires "research".
func DefaultKeywordTable() map[string]Keywords {
	return map[string]Keywords{
		"treatment": {
			High:   []string{"chemotherapy", "immunotherapy", "radiotherapy", "radiation therapy"},
			Medium: []string{"therapy", "therapies", "treatment", "treatments", "drug", "medication", "regimen"},
			Low:    []string{"dose", "dosage", "protocol", "prescription"},
		},
		"research": {
			High:   []string{"clinical trial", "clinical trials", "peer-reviewed"},
			Medium: []string{"research", "researchers", "study", "studies", "scientists"},
			Low:    []string{"laboratory", "experiment", "hypothesis", "journal"},
		},
		"surgery": {
			High:   []string{"surgery", "surgical", "surgeon", "surgeons"},
			Medium: []string{"operation", "resection", "transplant", "implant"},
			Low:    []string{"incision", "anesthesia", "postoperative"},
		},
		"diagnosis": {
			High:   []string{"diagnosis", "diagnosed", "diagnostic"},
			Medium: []string{"biopsy", "imaging", "mri", "ct scan", "pathology"},
			Low:    []string{"symptom", "symptoms", "detection"},
		},
		"screening": {
			High:   []string{"screening", "early detection"},
			Medium: []string{"mammogram", "colonoscopy", "checkup", "test results"},
			Low:    []string{"prevention", "preventive", "routine test"},
		},
		"genetics": {
			High:   []string{"genetic", "genome", "mutation", "mutations", "dna"},
			Medium: []string{"gene", "genes", "hereditary", "chromosome", "brca"},
			Low:    []string{"inherited", "biomarker", "biomarkers"},
		},
		"lifestyle": {
			High:   []string{"diet", "exercise", "nutrition"},
			Medium: []string{"obesity", "smoking", "alcohol", "lifestyle"},
			Low:    []string{"wellness", "habits", "sleep"},
		},
		"support": {
			High:   []string{"support group", "support groups", "caregiver", "caregivers", "palliative"},
			Medium: []string{"counseling", "mental health", "survivor", "survivors"},
			Low:    []string{"community", "hospice", "coping"},
		},
		"policy": {
			High:   []string{"legislation", "regulation", "fda approval"},
			Medium: []string{"policy", "insurance", "medicare", "medicaid"},
			Low:    []string{"funding", "lawmakers", "congress"},
		},
		"general": {
			Low: []string{"health", "medical", "hospital", "patient", "patients"},
		},
	}
}
