package obl

//Prior is a CTR prior written as a fraction.
type Prior struct {
	Num   float32 `json:"num" mapstructure:"num"`
	Denom float32 `json:"denom" mapstructure:"denom"`
}

//CtrDescription describes one CTR kind referenced by Ctr.CtrIdx.
type CtrDescription struct {
	CtrType string  `json:"ctr_type" mapstructure:"ctr_type"`
	Priors  []Prior `json:"priors" mapstructure:"priors"`
}

//ModelSplitContext is what the training context provides for the export of splits.
type ModelSplitContext struct {
	QuantizedFeaturesInfo QuantizedFeaturesInfo
	CtrDescriptions       []CtrDescription
}

//PerfectHashedToHashedCatValuesMap maps a categorical feature and a perfect hash of its value
//back to the hashed value stored in models.
type PerfectHashedToHashedCatValuesMap [][]uint32

type FloatModelSplit struct {
	FloatFeature int     `json:"float_feature"`
	Split        float32 `json:"split"`
}

type OneHotModelSplit struct {
	CatFeatureIdx int    `json:"cat_feature_idx"`
	Value         uint32 `json:"value"`
}

type ModelCtr struct {
	Projection      Projection `json:"projection"`
	CtrType         string     `json:"ctr_type"`
	TargetBorderIdx int        `json:"target_border_idx"`
	PriorNum        float32    `json:"prior_num"`
	PriorDenom      float32    `json:"prior_denom"`
}

type ModelCtrSplit struct {
	Ctr    ModelCtr `json:"ctr"`
	Border float32  `json:"border"`
}

//ModelSplit is the exported form of a split. Only the field selected by Type is filled.
type ModelSplit struct {
	Type          SplitType        `json:"type"`
	FloatFeature  FloatModelSplit  `json:"float_feature"`
	OneHotFeature OneHotModelSplit `json:"one_hot_feature"`
	OnlineCtr     ModelCtrSplit    `json:"online_ctr"`
}

//GetModelSplit translates a split into its model representation.
func (s Split) GetModelSplit(ctx ModelSplitContext, catValuesMap PerfectHashedToHashedCatValuesMap) ModelSplit {
	result := ModelSplit{Type: s.Type}
	switch s.Type {
	case FloatFeature:
		borders := ctx.QuantizedFeaturesInfo.GetBorders(s.FeatureIdx)
		if s.BinBorder < 0 || s.BinBorder >= len(borders) {
			log.Panicf("border %d of float feature %d is out of range [0, %d)", s.BinBorder, s.FeatureIdx, len(borders))
		}
		result.FloatFeature = FloatModelSplit{FloatFeature: s.FeatureIdx, Split: borders[s.BinBorder]}
	case OneHotFeature:
		if s.FeatureIdx < 0 || s.FeatureIdx >= len(catValuesMap) {
			log.Panicf("categorical feature %d has no hashed values", s.FeatureIdx)
		}
		values := catValuesMap[s.FeatureIdx]
		if s.BinBorder < 0 || s.BinBorder >= len(values) {
			log.Panicf("value %d of categorical feature %d is out of range [0, %d)", s.BinBorder, s.FeatureIdx, len(values))
		}
		result.OneHotFeature = OneHotModelSplit{CatFeatureIdx: s.FeatureIdx, Value: values[s.BinBorder]}
	case OnlineCtr:
		if int(s.Ctr.CtrIdx) >= len(ctx.CtrDescriptions) {
			log.Panicf("ctr description %d is out of range [0, %d)", s.Ctr.CtrIdx, len(ctx.CtrDescriptions))
		}
		description := ctx.CtrDescriptions[s.Ctr.CtrIdx]
		if int(s.Ctr.PriorIdx) >= len(description.Priors) {
			log.Panicf("prior %d of ctr %q is out of range [0, %d)", s.Ctr.PriorIdx, description.CtrType, len(description.Priors))
		}
		prior := description.Priors[s.Ctr.PriorIdx]
		result.OnlineCtr = ModelCtrSplit{
			Ctr: ModelCtr{
				Projection:      s.Ctr.Projection.Clone(),
				CtrType:         description.CtrType,
				TargetBorderIdx: int(s.Ctr.TargetBorderIdx),
				PriorNum:        prior.Num,
				PriorDenom:      prior.Denom,
			},
			Border: EmulateUi8Rounding(s.BinBorder),
		}
	default:
		log.Panicf("can't export a split of type %v", s.Type)
	}
	return result
}
