package obl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBucketCountOneFeature(t *testing.T) {
	info := createTestQuantizedFeatures()

	assert.Equal(t, 4, GetBucketCount(NewOneFeatureEnsemble(NewFloatSplitCandidate(0)), info, 0, nil))
	assert.Equal(t, 1, GetBucketCount(NewOneFeatureEnsemble(NewFloatSplitCandidate(2)), info, 0, nil))
	assert.Equal(t, 12, GetBucketCount(NewOneFeatureEnsemble(NewOneHotSplitCandidate(1)), info, 0, nil))
	assert.Equal(t, 16, GetBucketCount(NewOneFeatureEnsemble(NewCtrSplitCandidate(createTestCtr())), info, 0, nil))
}

func TestGetBucketCountBinarySplitsIgnoresMetadata(t *testing.T) {
	ensemble := NewBinarySplitsEnsemble(3)
	for _, packed := range []int{0, 1, 8, 255} {
		assert.Equal(t, packed, GetBucketCount(ensemble, createTestQuantizedFeatures(), packed, nil))
		assert.Equal(t, packed, GetBucketCount(ensemble, QuantizedFeatures{}, packed, createTestBundles()))
	}
}

func TestGetBucketCountExclusiveBundle(t *testing.T) {
	bundles := createTestBundles()
	assert.Equal(t, 3+5, GetBucketCount(NewExclusiveBundleEnsemble(0), nil, 0, bundles))
	assert.Equal(t, 299, GetBucketCount(NewExclusiveBundleEnsemble(1), nil, 0, bundles))
	assert.Panics(t, func() { GetBucketCount(NewExclusiveBundleEnsemble(2), nil, 0, bundles) })
}

func TestGetBucketCountDoesNotModifyInputs(t *testing.T) {
	bundles := createTestBundles()
	info := createTestQuantizedFeatures()
	ensemble := NewExclusiveBundleEnsemble(0)

	first := GetBucketCount(ensemble, info, 8, bundles)
	second := GetBucketCount(ensemble, info, 8, bundles)

	assert.Equal(t, first, second)
	assert.Equal(t, createTestBundles(), bundles)
	assert.Equal(t, createTestQuantizedFeatures(), info)
}

func TestUseForCalcScores(t *testing.T) {
	categorical := func(size uint32) ExclusiveBundlePart {
		return ExclusiveBundlePart{FeatureType: Categorical, Bounds: BoundsInBundle{Begin: 1, End: 1 + size}}
	}
	assert.True(t, UseForCalcScores(categorical(4), 5))
	assert.False(t, UseForCalcScores(categorical(5), 5))
	assert.False(t, UseForCalcScores(categorical(0), 0))
	assert.True(t, UseForCalcScores(categorical(0), 1))

	float := ExclusiveBundlePart{FeatureType: Float, Bounds: BoundsInBundle{Begin: 1, End: 1000}}
	for _, oneHotMaxSize := range []uint32{0, 1, 5, 1 << 31} {
		assert.True(t, UseForCalcScores(float, oneHotMaxSize))
	}
}

func TestDecodeBucket(t *testing.T) {
	assert.Equal(t, 17, OneSplitSpec(FloatFeature).DecodeBucket(17, 5))

	pack := BinarySplitsPackSpec()
	assert.Equal(t, 1, pack.DecodeBucket(0b1010, 1))
	assert.Equal(t, 0, pack.DecodeBucket(0b1010, 2))
	assert.Panics(t, func() { pack.DecodeBucket(1, 32) })

	bundle := ExclusiveFeatureBundleSpec(createTestBundles()[0])
	assert.Equal(t, 0, bundle.DecodeBucket(0, 0))
	assert.Equal(t, 1, bundle.DecodeBucket(1, 0))
	assert.Equal(t, 3, bundle.DecodeBucket(3, 0))
	assert.Equal(t, 0, bundle.DecodeBucket(4, 0))
	assert.Equal(t, 1, bundle.DecodeBucket(4, 1))
	assert.Equal(t, 5, bundle.DecodeBucket(8, 1))
	assert.Panics(t, func() { bundle.DecodeBucket(1, 2) })

	assert.Equal(t, 4, bundle.SubFeatureBucketCount(8, 0))
	assert.Equal(t, 6, bundle.SubFeatureBucketCount(8, 1))
	assert.Equal(t, 2, pack.SubFeatureBucketCount(8, 3))
}

func TestExclusiveFeaturesBundleBinCount(t *testing.T) {
	bundles := createTestBundles()
	assert.Equal(t, uint32(9), bundles[0].GetBinCount())
	assert.Equal(t, uint32(0), ExclusiveFeaturesBundle{}.GetBinCount())
	assert.True(t, bundles[0].Equal(createTestBundles()[0]))
	assert.False(t, bundles[0].Equal(bundles[1]))
}
