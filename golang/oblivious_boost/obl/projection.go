package obl

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

//BinFeature is a binarized float feature: the object goes right when its bin is above SplitIdx.
type BinFeature struct {
	FloatFeature int `json:"float_feature"`
	SplitIdx     int `json:"split_idx"`
}

func compareBinFeatures(a, b BinFeature) int {
	if c := cmp.Compare(a.FloatFeature, b.FloatFeature); c != 0 {
		return c
	}
	return cmp.Compare(a.SplitIdx, b.SplitIdx)
}

//OneHotSplit is a categorical feature compared for equality with one category value.
type OneHotSplit struct {
	CatFeatureIdx int `json:"cat_feature_idx"`
	Value         int `json:"value"`
}

func compareOneHotSplits(a, b OneHotSplit) int {
	if c := cmp.Compare(a.CatFeatureIdx, b.CatFeatureIdx); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

//Projection is a combination of categorical features, optionally combined with binarized
//float features and one-hot splits. A CTR is computed over the values of a projection.
//All three lists are kept sorted, so two projections built in a different order are equal.
type Projection struct {
	CatFeatures    []int         `json:"cat_features"`
	BinFeatures    []BinFeature  `json:"bin_features"`
	OneHotFeatures []OneHotSplit `json:"one_hot_features"`
}

//NewCatProjection returns a projection over the given categorical features.
func NewCatProjection(catFeatures ...int) Projection {
	var proj Projection
	for _, f := range catFeatures {
		proj.AddCatFeature(f)
	}
	return proj
}

//AddCatFeature inserts a categorical feature keeping the list sorted.
//The previous backing array is never modified, so copies of the projection stay intact.
func (p *Projection) AddCatFeature(featureIdx int) {
	p.CatFeatures = insertSorted(p.CatFeatures, featureIdx, cmp.Compare[int])
}

func (p *Projection) AddBinFeature(binFeature BinFeature) {
	p.BinFeatures = insertSorted(p.BinFeatures, binFeature, compareBinFeatures)
}

func (p *Projection) AddOneHotFeature(oneHot OneHotSplit) {
	p.OneHotFeatures = insertSorted(p.OneHotFeatures, oneHot, compareOneHotSplits)
}

func insertSorted[T any](values []T, value T, compare func(a, b T) int) []T {
	pos, found := slices.BinarySearchFunc(values, value, compare)
	if found {
		return values
	}
	return slices.Insert(slices.Clone(values), pos, value)
}

func (p Projection) IsEmpty() bool {
	return len(p.CatFeatures) == 0 && len(p.BinFeatures) == 0 && len(p.OneHotFeatures) == 0
}

//IsSingleCatFeature reports whether the projection is exactly one categorical feature.
func (p Projection) IsSingleCatFeature() bool {
	return len(p.CatFeatures) == 1 && len(p.BinFeatures) == 0 && len(p.OneHotFeatures) == 0
}

func (p Projection) HasSingleFeature() bool {
	return len(p.CatFeatures)+len(p.BinFeatures)+len(p.OneHotFeatures) == 1
}

func (p Projection) Equal(other Projection) bool {
	return slices.Equal(p.CatFeatures, other.CatFeatures) &&
		slices.Equal(p.BinFeatures, other.BinFeatures) &&
		slices.Equal(p.OneHotFeatures, other.OneHotFeatures)
}

//Clone returns a projection that shares no memory with p.
func (p Projection) Clone() Projection {
	return Projection{
		CatFeatures:    slices.Clone(p.CatFeatures),
		BinFeatures:    slices.Clone(p.BinFeatures),
		OneHotFeatures: slices.Clone(p.OneHotFeatures),
	}
}

//GetHash hashes every list together with its length, so moving a feature between lists changes the hash.
func (p Projection) GetHash() uint64 {
	words := make([]uint64, 0, 3+len(p.CatFeatures)+2*len(p.BinFeatures)+2*len(p.OneHotFeatures))
	words = append(words, uint64(len(p.CatFeatures)))
	for _, f := range p.CatFeatures {
		words = append(words, intWord(f))
	}
	words = append(words, uint64(len(p.BinFeatures)))
	for _, f := range p.BinFeatures {
		words = append(words, intWord(f.FloatFeature), intWord(f.SplitIdx))
	}
	words = append(words, uint64(len(p.OneHotFeatures)))
	for _, f := range p.OneHotFeatures {
		words = append(words, intWord(f.CatFeatureIdx), intWord(f.Value))
	}
	return multiHash(words...)
}

func (p Projection) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprint("cat", p.CatFeatures))
	for _, f := range p.BinFeatures {
		sb.WriteString(fmt.Sprintf(" f_%d>%d", f.FloatFeature, f.SplitIdx))
	}
	for _, f := range p.OneHotFeatures {
		sb.WriteString(fmt.Sprintf(" c_%d=%d", f.CatFeatureIdx, f.Value))
	}
	return sb.String()
}
