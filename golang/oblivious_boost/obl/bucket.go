package obl

//GetBucketCount returns the number of distinct bucket values of an ensemble.
//It reads the metadata only and never modifies it.
func GetBucketCount(
	ensemble SplitEnsemble,
	quantizedFeaturesInfo QuantizedFeaturesInfo,
	packedBinaryFeaturesCount int,
	bundles []ExclusiveFeaturesBundle,
) int {
	switch ensemble.kind {
	case OneFeature:
		return splitCandidateBucketCount(ensemble.candidate, quantizedFeaturesInfo)
	case BinarySplits:
		return packedBinaryFeaturesCount
	case ExclusiveBundle:
		binCount := 0
		for _, part := range bundleAt(bundles, ensemble.bundle.BundleIdx).Parts {
			binCount += int(part.Bounds.GetSize())
		}
		return binCount
	}
	log.Panicf("can't count buckets of a split ensemble of type %v", ensemble.kind)
	return 0
}

func splitCandidateBucketCount(candidate SplitCandidate, quantizedFeaturesInfo QuantizedFeaturesInfo) int {
	switch candidate.Type {
	case FloatFeature:
		return len(quantizedFeaturesInfo.GetBorders(candidate.FeatureIdx)) + 1
	case OneHotFeature:
		return quantizedFeaturesInfo.GetUniqueValuesCount(candidate.FeatureIdx)
	case OnlineCtr:
		return int(candidate.Ctr.BorderCount) + 1
	}
	log.Panicf("can't count buckets of a split candidate of type %v", candidate.Type)
	return 0
}

//DecodeBucket extracts the bin of one sub-feature from a raw bucket value.
//subIdx is the bit of a binary pack or the part of a bundle and is ignored for OneFeature specs.
func (s SplitEnsembleSpec) DecodeBucket(raw uint32, subIdx int) int {
	switch s.Type {
	case OneFeature:
		return int(raw)
	case BinarySplits:
		if subIdx < 0 || subIdx >= 32 {
			log.Panicf("binary pack bit %d is out of range", subIdx)
		}
		return int((raw >> uint(subIdx)) & 1)
	case ExclusiveBundle:
		parts := s.ExclusiveFeaturesBundle.Parts
		if subIdx < 0 || subIdx >= len(parts) {
			log.Panicf("bundle part %d is out of range [0, %d)", subIdx, len(parts))
		}
		bounds := parts[subIdx].Bounds
		if bounds.Contains(raw) {
			return int(raw-bounds.Begin) + 1
		}
		return 0
	}
	log.Panicf("can't decode a bucket of a spec of type %v", s.Type)
	return 0
}

//SubFeatureBucketCount is the number of bins DecodeBucket can return for subIdx.
func (s SplitEnsembleSpec) SubFeatureBucketCount(ensembleBucketCount, subIdx int) int {
	switch s.Type {
	case OneFeature:
		return ensembleBucketCount
	case BinarySplits:
		return 2
	case ExclusiveBundle:
		parts := s.ExclusiveFeaturesBundle.Parts
		if subIdx < 0 || subIdx >= len(parts) {
			log.Panicf("bundle part %d is out of range [0, %d)", subIdx, len(parts))
		}
		return int(parts[subIdx].Bounds.GetSize()) + 1
	}
	log.Panicf("can't count buckets of a spec of type %v", s.Type)
	return 0
}
