package scoring

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// Tier labels. Risk and safety share the top tiers but not the bottom ones.
const (
	LabelVerySafe    = "매우 안전"
	LabelSafe        = "안전"
	LabelModerate    = "보통"
	LabelDanger      = "위험"
	LabelVeryDanger  = "매우 위험"
	LabelLacking     = "부족"
	LabelVeryLacking = "매우 부족"
)

var riskDescriptions = map[domain.Tone]string{
	domain.ToneExcellent: "주변 보행자 사고 이력이 거의 없습니다",
	domain.ToneGood:      "사고 이력이 적은 편입니다",
	domain.ToneModerate:  "사고가 간헐적으로 발생하는 지역입니다. 주의하세요",
	domain.ToneWarning:   "보행자 사고가 잦은 지역입니다. 횡단 시 주의가 필요합니다",
	domain.ToneCritical:  "중상·사망 사고가 집중된 지역입니다. 각별히 주의하세요",
}

var safetyDescriptions = map[domain.Tone]string{
	domain.ToneExcellent: "안전 시설이 충분히 갖춰져 있습니다",
	domain.ToneGood:      "주요 안전 시설이 설치되어 있습니다",
	domain.ToneModerate:  "기본 안전 시설만 갖춰져 있습니다",
	domain.ToneWarning:   "안전 시설이 부족합니다. 개선이 필요합니다",
	domain.ToneCritical:  "안전 시설이 거의 없습니다. 시급한 개선이 필요합니다",
}

// Classify maps a score to its five-tier label and tone.
//
// Risk tiers test with strict "<" (a risk of exactly 20 is 안전); safety tiers
// test with strict ">" (a safety of exactly 80 is 안전). Scores outside [0,100]
// fall into the nearest end tier. NaN scores and unknown kinds are rejected.
func Classify(score float64, kind domain.ScoreKind) (domain.ScoreClassification, error) {
	if math.IsNaN(score) {
		return domain.ScoreClassification{}, eris.Wrap(domain.ErrInvalidInput, "scoring: cannot classify NaN score")
	}

	switch kind {
	case domain.KindRisk:
		label, tone := riskTier(score)
		return domain.ScoreClassification{Label: label, Tone: tone, Description: riskDescriptions[tone]}, nil
	case domain.KindSafety:
		label, tone := safetyTier(score)
		return domain.ScoreClassification{Label: label, Tone: tone, Description: safetyDescriptions[tone]}, nil
	default:
		return domain.ScoreClassification{}, eris.Wrapf(domain.ErrInvalidInput, "scoring: unknown score kind %q", kind)
	}
}

func riskTier(score float64) (string, domain.Tone) {
	switch {
	case score < 20:
		return LabelVerySafe, domain.ToneExcellent
	case score < 40:
		return LabelSafe, domain.ToneGood
	case score < 60:
		return LabelModerate, domain.ToneModerate
	case score < 80:
		return LabelDanger, domain.ToneWarning
	default:
		return LabelVeryDanger, domain.ToneCritical
	}
}

func safetyTier(score float64) (string, domain.Tone) {
	switch {
	case score > 80:
		return LabelVerySafe, domain.ToneExcellent
	case score > 60:
		return LabelSafe, domain.ToneGood
	case score > 40:
		return LabelModerate, domain.ToneModerate
	case score > 20:
		return LabelLacking, domain.ToneWarning
	default:
		return LabelVeryLacking, domain.ToneCritical
	}
}
