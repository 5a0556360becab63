package obl

import (
	"gorgonia.org/tensor"
)

const (
	weightStat = iota
	derivativeStat
	statCount
)

//BucketHistogram accumulates the weight and the derivative sums of every (leaf, bucket) pair
//for one sub-feature of a split ensemble. Buckets are decoded from raw values through the spec.
type BucketHistogram struct {
	Spec        SplitEnsembleSpec
	SubIdx      int
	LeafCount   int
	BucketCount int
	stats       *tensor.Dense
}

//NewBucketHistogram allocates an empty histogram.
func NewBucketHistogram(spec SplitEnsembleSpec, subIdx, leafCount, bucketCount int) *BucketHistogram {
	if leafCount <= 0 || bucketCount <= 0 {
		log.Panicf("histogram needs positive sizes, got %d leaves and %d buckets", leafCount, bucketCount)
	}
	return &BucketHistogram{
		Spec:        spec,
		SubIdx:      subIdx,
		LeafCount:   leafCount,
		BucketCount: bucketCount,
		stats:       tensor.New(tensor.WithShape(leafCount, bucketCount, statCount), tensor.Of(tensor.Float64)),
	}
}

func (h *BucketHistogram) at(leaf, bucket, stat int) float64 {
	element, err := h.stats.At(leaf, bucket, stat)
	HandleError(err)
	return element.(float64)
}

func (h *BucketHistogram) add(leaf, bucket, stat int, value float64) {
	HandleError(h.stats.SetAt(h.at(leaf, bucket, stat)+value, leaf, bucket, stat))
}

//Add puts one object with a decoded bucket into the histogram.
func (h *BucketHistogram) Add(leaf, bucket int, weight, derivative float64) {
	if leaf < 0 || leaf >= h.LeafCount {
		log.Panicf("leaf %d is out of range [0, %d)", leaf, h.LeafCount)
	}
	if bucket < 0 || bucket >= h.BucketCount {
		log.Panicf("bucket %d is out of range [0, %d)", bucket, h.BucketCount)
	}
	h.add(leaf, bucket, weightStat, weight)
	h.add(leaf, bucket, derivativeStat, derivative)
}

//Accumulate decodes raw bucket values and adds every object. A nil weights slice means unit weights.
func (h *BucketHistogram) Accumulate(rawBuckets []uint32, leaves []int, weights, derivatives []float64) {
	if len(leaves) != len(rawBuckets) || len(derivatives) != len(rawBuckets) {
		log.Panicf("inconsistent object counts: %d buckets, %d leaves, %d derivatives",
			len(rawBuckets), len(leaves), len(derivatives))
	}
	if weights != nil && len(weights) != len(rawBuckets) {
		log.Panicf("%d weights for %d objects", len(weights), len(rawBuckets))
	}
	for i, raw := range rawBuckets {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		h.Add(leaves[i], h.Spec.DecodeBucket(raw, h.SubIdx), w, derivatives[i])
	}
}

func (h *BucketHistogram) Weight(leaf, bucket int) float64 {
	return h.at(leaf, bucket, weightStat)
}

func (h *BucketHistogram) Derivative(leaf, bucket int) float64 {
	return h.at(leaf, bucket, derivativeStat)
}

//LeafWeights sums the weights of every leaf over all buckets.
func (h *BucketHistogram) LeafWeights() []float64 {
	result := make([]float64, h.LeafCount)
	for leaf := range result {
		for bucket := 0; bucket < h.BucketCount; bucket++ {
			result[leaf] += h.Weight(leaf, bucket)
		}
	}
	return result
}
