package obl

//SplitEnsembleSpec is the shape of a split ensemble: enough to interpret raw bucket values
//without the dataset. OneSplitType is meaningful only for OneFeature specs and
//ExclusiveFeaturesBundle only for ExclusiveBundle specs.
type SplitEnsembleSpec struct {
	Type                    EnsembleType            `json:"type"`
	OneSplitType            SplitType               `json:"one_split_type"`
	ExclusiveFeaturesBundle ExclusiveFeaturesBundle `json:"exclusive_features_bundle"`
}

func OneSplitSpec(splitType SplitType) SplitEnsembleSpec {
	return SplitEnsembleSpec{Type: OneFeature, OneSplitType: splitType}
}

func BinarySplitsPackSpec() SplitEnsembleSpec {
	return SplitEnsembleSpec{Type: BinarySplits, OneSplitType: FloatFeature}
}

func ExclusiveFeatureBundleSpec(bundle ExclusiveFeaturesBundle) SplitEnsembleSpec {
	return SplitEnsembleSpec{Type: ExclusiveBundle, OneSplitType: FloatFeature, ExclusiveFeaturesBundle: bundle}
}

//NewSplitEnsembleSpec projects an ensemble to its spec. For an ExclusiveBundle ensemble the bundle
//index must be valid for bundles.
func NewSplitEnsembleSpec(ensemble SplitEnsemble, bundles []ExclusiveFeaturesBundle) SplitEnsembleSpec {
	switch ensemble.kind {
	case OneFeature:
		return OneSplitSpec(ensemble.candidate.Type)
	case BinarySplits:
		return BinarySplitsPackSpec()
	case ExclusiveBundle:
		return ExclusiveFeatureBundleSpec(bundleAt(bundles, ensemble.bundle.BundleIdx))
	}
	log.Panicf("can't build a spec of a split ensemble of type %v", ensemble.kind)
	return SplitEnsembleSpec{}
}

func bundleAt(bundles []ExclusiveFeaturesBundle, bundleIdx uint32) ExclusiveFeaturesBundle {
	if uint64(bundleIdx) >= uint64(len(bundles)) {
		log.Panicf("bundle index %d is out of range [0, %d)", bundleIdx, len(bundles))
	}
	return bundles[bundleIdx]
}

func (s SplitEnsembleSpec) Equal(other SplitEnsembleSpec) bool {
	if s.Type != other.Type {
		return false
	}
	switch s.Type {
	case OneFeature:
		return s.OneSplitType == other.OneSplitType
	case BinarySplits:
		return true
	case ExclusiveBundle:
		return s.ExclusiveFeaturesBundle.Equal(other.ExclusiveFeaturesBundle)
	}
	return false
}
