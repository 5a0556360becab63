package obl

import (
	"fmt"
	"slices"
)

//Split is a split candidate resolved to a bin border. Equal and GetHash come from the
//candidate and ignore BinBorder; SameAs compares the border too.
type Split struct {
	SplitCandidate
	BinBorder int `json:"bin_border"`
}

func NewSplit(candidate SplitCandidate, binBorder int) Split {
	return Split{SplitCandidate: candidate, BinBorder: binBorder}
}

//SameAs compares candidates and borders.
func (s Split) SameAs(other Split) bool {
	return s.SplitCandidate.Equal(other.SplitCandidate) && s.BinBorder == other.BinBorder
}

func (s Split) String() string {
	return fmt.Sprintf("%s > %d", s.SplitCandidate, s.BinBorder)
}

//EmulateUi8Rounding maps a bin border to a value that lies between bins value and value+1
//of an 8-bit quantized statistic.
func EmulateUi8Rounding(value int) float32 {
	return float32(value) + 0.999999
}

//SplitTree is an oblivious tree: Splits[d] is applied at depth d to every node of that level.
//Splits are appended while the tree grows and can be deleted while it is simplified.
//A SplitTree is owned by one goroutine while it is modified.
type SplitTree struct {
	Splits []Split `json:"splits"`
}

//MaxTreeDepth keeps GetLeafCount representable as an int.
const MaxTreeDepth = 62

func (t *SplitTree) AddSplit(split Split) {
	if len(t.Splits) >= MaxTreeDepth {
		log.Panicf("tree already has the maximal depth %d", MaxTreeDepth)
	}
	t.Splits = append(t.Splits, split)
}

//DeleteSplit removes the split at splitIdx and shifts the deeper splits up by one level.
func (t *SplitTree) DeleteSplit(splitIdx int) {
	if splitIdx < 0 || splitIdx >= len(t.Splits) {
		log.Panicf("split index %d is out of range [0, %d)", splitIdx, len(t.Splits))
	}
	t.Splits = slices.Delete(t.Splits, splitIdx, splitIdx+1)
}

func (t SplitTree) GetLeafCount() int {
	return 1 << len(t.Splits)
}

func (t SplitTree) GetDepth() int {
	return len(t.Splits)
}

func (t SplitTree) GetBinFeatures() []BinFeature {
	var result []BinFeature
	for _, split := range t.Splits {
		if split.Type == FloatFeature {
			result = append(result, BinFeature{FloatFeature: split.FeatureIdx, SplitIdx: split.BinBorder})
		}
	}
	return result
}

func (t SplitTree) GetOneHotFeatures() []OneHotSplit {
	var result []OneHotSplit
	for _, split := range t.Splits {
		if split.Type == OneHotFeature {
			result = append(result, OneHotSplit{CatFeatureIdx: split.FeatureIdx, Value: split.BinBorder})
		}
	}
	return result
}

func (t SplitTree) GetCtrSplits() []Ctr {
	var result []Ctr
	for _, split := range t.Splits {
		if split.Type == OnlineCtr {
			result = append(result, split.Ctr)
		}
	}
	return result
}

//Equal compares the trees split by split, borders included.
func (t SplitTree) Equal(other SplitTree) bool {
	return slices.EqualFunc(t.Splits, other.Splits, Split.SameAs)
}

func (t SplitTree) Clone() SplitTree {
	return SplitTree{Splits: slices.Clone(t.Splits)}
}

//GetLeafIndex returns the leaf an object falls into. goesRight is asked once per level;
//the bit of a level is set when the object goes right there.
func (t SplitTree) GetLeafIndex(goesRight func(level int, split Split) bool) int {
	leafIdx := 0
	for level, split := range t.Splits {
		if goesRight(level, split) {
			leafIdx |= 1 << level
		}
	}
	return leafIdx
}
