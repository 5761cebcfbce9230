package score

import "math"

// Sex is the biological sex recorded for a subject. NHANES codes RIAGENDR as
// 1=male, 2=female; report labels follow the study convention M/F.
type Sex int

const (
	Male Sex = iota + 1
	Female
)

// ParseSex maps an NHANES RIAGENDR code to a Sex.
func ParseSex(code float64) (Sex, bool) {
	switch code {
	case 1:
		return Male, true
	case 2:
		return Female, true
	default:
		return 0, false
	}
}

func (s Sex) String() string {
	switch s {
	case Male:
		return "M"
	case Female:
		return "F"
	default:
		return "?"
	}
}

// ClinicalProfile holds the fields the risk equation consumes. Cholesterol in
// mg/dL, systolic blood pressure in mmHg.
type ClinicalProfile struct {
	Age        float64
	Sex        Sex
	TotalChol  float64
	HDLChol    float64
	SystolicBP float64
	TreatedBP  bool
	Smoker     bool
	Diabetic   bool
}

// Sex-stratified Cox coefficients from the published general-CVD risk equation
// (D'Agostino et al., 2008). Fixed by design; not configurable.
type framinghamCoeffs struct {
	lnAge        float64
	lnTotalChol  float64
	lnHDL        float64
	lnSBPUntreat float64
	lnSBPTreat   float64
	smoker       float64
	diabetes     float64
	meanSum      float64 // cohort mean of the linear predictor
	baseline     float64 // 10-year baseline survival S0(10)
}

var (
	framinghamMale = framinghamCoeffs{
		lnAge:        3.06117,
		lnTotalChol:  1.12370,
		lnHDL:        -0.93263,
		lnSBPUntreat: 1.93303,
		lnSBPTreat:   1.99881,
		smoker:       0.65451,
		diabetes:     0.57367,
		meanSum:      23.9802,
		baseline:     0.88936,
	}
	framinghamFemale = framinghamCoeffs{
		lnAge:        2.32888,
		lnTotalChol:  1.20904,
		lnHDL:        -0.70833,
		lnSBPUntreat: 2.76157,
		lnSBPTreat:   2.82263,
		smoker:       0.52873,
		diabetes:     0.69154,
		meanSum:      26.1931,
		baseline:     0.95012,
	}
)

// Framingham computes the predicted 10-year CVD risk as a percentage (0–100).
// Non-positive age, cholesterol, HDL, or blood pressure excludes the subject.
func Framingham(p ClinicalProfile) (float64, error) {
	if p.Age <= 0 || p.TotalChol <= 0 || p.HDLChol <= 0 || p.SystolicBP <= 0 {
		return 0, ErrIncomplete
	}
	var c framinghamCoeffs
	switch p.Sex {
	case Male:
		c = framinghamMale
	case Female:
		c = framinghamFemale
	default:
		return 0, ErrIncomplete
	}

	sum := c.lnAge * math.Log(p.Age)
	sum += c.lnTotalChol * math.Log(p.TotalChol)
	sum += c.lnHDL * math.Log(p.HDLChol)
	if p.TreatedBP {
		sum += c.lnSBPTreat * math.Log(p.SystolicBP)
	} else {
		sum += c.lnSBPUntreat * math.Log(p.SystolicBP)
	}
	if p.Smoker {
		sum += c.smoker
	}
	if p.Diabetic {
		sum += c.diabetes
	}

	risk := (1 - math.Pow(c.baseline, math.Exp(sum-c.meanSum))) * 100
	return clamp(risk, 0, 100), nil
}
