// Package classifier は特徴ベクトルから料理ラベルを決定する分類器を提供します。
package classifier

import (
	"dish_backend/internal/feature/recognition/domain/entity"
	"dish_backend/internal/feature/recognition/usecase"
)

// 分類ラベル
const (
	LabelRedApple       = "Red Apple"
	LabelOrange         = "Orange"
	LabelBanana         = "Banana"
	LabelGreenSalad     = "Green Salad"
	LabelPurpleEggplant = "Purple Eggplant"
	// LabelMixedDish は色相が [0, 180] の外（NaNを含む）の場合のラベルです。
	LabelMixedDish = "Mixed Dish"
)

// HueRule は色相の区間 [Min, Max) を1つのラベルに対応付けます。
// MaxInclusive が true の場合は [Min, Max] になります。
type HueRule struct {
	Min          float64
	Max          float64
	MaxInclusive bool
	Label        string
}

func (r HueRule) matches(h float64) bool {
	if h < r.Min {
		return false
	}
	if r.MaxInclusive {
		return h <= r.Max
	}
	return h < r.Max
}

// DefaultHueRules は色相軸 [0, 180] を隙間・重なりなく分割したルール表です。
// 境界値は上側の区間に入ります。
var DefaultHueRules = []HueRule{
	{Min: 0, Max: 10, Label: LabelRedApple},
	{Min: 10, Max: 30, Label: LabelOrange},
	{Min: 30, Max: 70, Label: LabelBanana},
	{Min: 70, Max: 150, Label: LabelGreenSalad},
	{Min: 150, Max: 180, MaxInclusive: true, Label: LabelPurpleEggplant},
}

// HueRuleClassifier は平均色相に対して最初に一致したルールのラベルを返します。
// 学習済みモデルに差し替える場合も usecase.Classifier を実装すればよく、
// Resolver や Orchestrator の契約は変わりません。
type HueRuleClassifier struct {
	rules    []HueRule
	fallback string
}

var _ usecase.Classifier = (*HueRuleClassifier)(nil)

// NewHueRuleClassifier は DefaultHueRules を使う分類器を生成します。
func NewHueRuleClassifier() *HueRuleClassifier {
	return &HueRuleClassifier{rules: DefaultHueRules, fallback: LabelMixedDish}
}

// Classify は特徴ベクトルの色相からラベルを1つ返します。
func (c *HueRuleClassifier) Classify(fv entity.FeatureVector) string {
	for _, r := range c.rules {
		if r.matches(fv.Hue) {
			return r.Label
		}
	}
	return c.fallback
}
