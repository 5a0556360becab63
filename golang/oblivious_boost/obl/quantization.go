package obl

import "slices"

//QuantizedFeaturesInfo is the part of the quantization metadata the split model reads.
//Implementations are owned by the dataset layer.
type QuantizedFeaturesInfo interface {
	//GetBorders returns the bin borders of a float feature.
	GetBorders(floatFeatureIdx int) []float32
	//GetUniqueValuesCount returns the number of distinct learn values of a categorical feature.
	GetUniqueValuesCount(catFeatureIdx int) int
}

//QuantizedFeatures is a plain in-memory QuantizedFeaturesInfo.
type QuantizedFeatures struct {
	Borders            [][]float32 `json:"borders" mapstructure:"borders"`
	UniqueValuesCounts []int       `json:"unique_values_counts" mapstructure:"unique_values_counts"`
}

func (q QuantizedFeatures) GetBorders(floatFeatureIdx int) []float32 {
	if floatFeatureIdx < 0 || floatFeatureIdx >= len(q.Borders) {
		log.Panicf("float feature %d is out of range [0, %d)", floatFeatureIdx, len(q.Borders))
	}
	return q.Borders[floatFeatureIdx]
}

func (q QuantizedFeatures) GetUniqueValuesCount(catFeatureIdx int) int {
	if catFeatureIdx < 0 || catFeatureIdx >= len(q.UniqueValuesCounts) {
		log.Panicf("categorical feature %d is out of range [0, %d)", catFeatureIdx, len(q.UniqueValuesCounts))
	}
	return q.UniqueValuesCounts[catFeatureIdx]
}

//BoundsInBundle is the half interval [Begin, End) of bundle values owned by one part.
type BoundsInBundle struct {
	Begin uint32 `json:"begin"`
	End   uint32 `json:"end"`
}

func (b BoundsInBundle) GetSize() uint32 {
	return b.End - b.Begin
}

func (b BoundsInBundle) Contains(value uint32) bool {
	return value >= b.Begin && value < b.End
}

//ExclusiveBundlePart is one feature merged into an exclusive bundle.
//A bundle value v inside Bounds means the part's feature is in bin v-Begin+1,
//any other value means the feature is in its default bin 0.
type ExclusiveBundlePart struct {
	FeatureType FeatureType    `json:"feature_type"`
	FeatureIdx  uint32         `json:"feature_idx"`
	Bounds      BoundsInBundle `json:"bounds"`
}

//ExclusiveFeaturesBundle is a set of mutually exclusive sparse features stored in one column.
type ExclusiveFeaturesBundle struct {
	SizeInBytes uint32                `json:"size_in_bytes"`
	Parts       []ExclusiveBundlePart `json:"parts"`
}

//GetBinCount returns the number of distinct bundle values used by the parts.
func (b ExclusiveFeaturesBundle) GetBinCount() uint32 {
	if len(b.Parts) == 0 {
		return 0
	}
	return b.Parts[len(b.Parts)-1].Bounds.End
}

func (b ExclusiveFeaturesBundle) Equal(other ExclusiveFeaturesBundle) bool {
	return b.SizeInBytes == other.SizeInBytes && slices.Equal(b.Parts, other.Parts)
}

//UseForCalcScores tells whether a bundled part takes part in split search.
//Categorical parts are scored as one-hot features and only when they are narrow enough.
func UseForCalcScores(part ExclusiveBundlePart, oneHotMaxSize uint32) bool {
	if part.FeatureType == Categorical {
		return uint64(part.Bounds.GetSize())+1 <= uint64(oneHotMaxSize)
	}
	return true
}
