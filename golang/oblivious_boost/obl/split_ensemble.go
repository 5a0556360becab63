package obl

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

//UnsetIdx marks a pack or bundle reference that does not point anywhere.
const UnsetIdx = math.MaxUint32

//BinarySplitsPackRef is an index into the dataset's packs of binary features.
type BinarySplitsPackRef struct {
	PackIdx uint32
}

//ExclusiveFeaturesBundleRef is an index into the dataset's exclusive feature bundles.
type ExclusiveFeaturesBundleRef struct {
	BundleIdx uint32
}

//SplitEnsemble is a group of splits whose statistics are computed together: a single split
//candidate, a pack of bit-packed binary features or an exclusive feature bundle.
//Values are built with NewOneFeatureEnsemble, NewBinarySplitsEnsemble or NewExclusiveBundleEnsemble.
//The payloads of the inactive variants are kept only to be written back by Save.
type SplitEnsemble struct {
	kind      EnsembleType
	candidate SplitCandidate
	pack      BinarySplitsPackRef
	bundle    ExclusiveFeaturesBundleRef
}

func NewOneFeatureEnsemble(candidate SplitCandidate) SplitEnsemble {
	return SplitEnsemble{
		kind:      OneFeature,
		candidate: candidate,
		pack:      BinarySplitsPackRef{PackIdx: UnsetIdx},
		bundle:    ExclusiveFeaturesBundleRef{BundleIdx: UnsetIdx},
	}
}

func NewBinarySplitsEnsemble(packIdx uint32) SplitEnsemble {
	return SplitEnsemble{
		kind:      BinarySplits,
		candidate: SplitCandidate{FeatureIdx: -1},
		pack:      BinarySplitsPackRef{PackIdx: packIdx},
		bundle:    ExclusiveFeaturesBundleRef{BundleIdx: UnsetIdx},
	}
}

func NewExclusiveBundleEnsemble(bundleIdx uint32) SplitEnsemble {
	return SplitEnsemble{
		kind:      ExclusiveBundle,
		candidate: SplitCandidate{FeatureIdx: -1},
		pack:      BinarySplitsPackRef{PackIdx: UnsetIdx},
		bundle:    ExclusiveFeaturesBundleRef{BundleIdx: bundleIdx},
	}
}

func (e SplitEnsemble) Type() EnsembleType {
	return e.kind
}

//SplitCandidate returns the payload of a OneFeature ensemble.
func (e SplitEnsemble) SplitCandidate() SplitCandidate {
	e.mustBe(OneFeature)
	return e.candidate
}

//PackIdx returns the payload of a BinarySplits ensemble.
func (e SplitEnsemble) PackIdx() uint32 {
	e.mustBe(BinarySplits)
	return e.pack.PackIdx
}

//BundleIdx returns the payload of an ExclusiveBundle ensemble.
func (e SplitEnsemble) BundleIdx() uint32 {
	e.mustBe(ExclusiveBundle)
	return e.bundle.BundleIdx
}

func (e SplitEnsemble) mustBe(kind EnsembleType) {
	if e.kind != kind {
		log.Panicf("split ensemble of type %v is read as %v", e.kind, kind)
	}
}

//IsSplitOfType is true only for a OneFeature ensemble holding a candidate of the given type.
func (e SplitEnsemble) IsSplitOfType(splitType SplitType) bool {
	return e.kind == OneFeature && e.candidate.Type == splitType
}

func (e SplitEnsemble) Equal(other SplitEnsemble) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case OneFeature:
		return e.candidate.Equal(other.candidate)
	case BinarySplits:
		return e.pack == other.pack
	case ExclusiveBundle:
		return e.bundle == other.bundle
	}
	return false
}

//GetHash of a OneFeature ensemble is the hash of its candidate, so ensembles and
//plain candidates can share hashed caches.
func (e SplitEnsemble) GetHash() uint64 {
	switch e.kind {
	case OneFeature:
		return e.candidate.GetHash()
	case BinarySplits:
		return multiHash(BinarySplitsPackHash, uint64(e.pack.PackIdx))
	case ExclusiveBundle:
		return multiHash(ExclusiveBundleHash, uint64(e.bundle.BundleIdx))
	}
	log.Panicf("can't hash a split ensemble of type %v", e.kind)
	return 0
}

//AppendKey appends a byte key that is equal for two ensembles exactly when Equal holds.
func (e SplitEnsemble) AppendKey(b []byte) []byte {
	b = append(b, byte(e.kind))
	switch e.kind {
	case OneFeature:
		return e.candidate.AppendKey(b)
	case BinarySplits:
		return appendWord(b, uint64(e.pack.PackIdx))
	case ExclusiveBundle:
		return appendWord(b, uint64(e.bundle.BundleIdx))
	}
	log.Panicf("can't build a key of a split ensemble of type %v", e.kind)
	return nil
}

//Key is AppendKey as a string, suitable for map keys.
func (e SplitEnsemble) Key() string {
	return string(e.AppendKey(nil))
}

func (e SplitEnsemble) String() string {
	switch e.kind {
	case OneFeature:
		return e.candidate.String()
	case BinarySplits:
		return fmt.Sprintf("pack_%d", e.pack.PackIdx)
	case ExclusiveBundle:
		return fmt.Sprintf("bundle_%d", e.bundle.BundleIdx)
	}
	return e.kind.String()
}

type splitEnsembleJSON struct {
	Type           EnsembleType    `json:"type"`
	SplitCandidate *SplitCandidate `json:"split_candidate,omitempty"`
	PackIdx        *uint32         `json:"pack_idx,omitempty"`
	BundleIdx      *uint32         `json:"bundle_idx,omitempty"`
}

//MarshalJSON writes the discriminant and the active payload only.
func (e SplitEnsemble) MarshalJSON() ([]byte, error) {
	out := splitEnsembleJSON{Type: e.kind}
	switch e.kind {
	case OneFeature:
		out.SplitCandidate = &e.candidate
	case BinarySplits:
		out.PackIdx = &e.pack.PackIdx
	case ExclusiveBundle:
		out.BundleIdx = &e.bundle.BundleIdx
	default:
		return nil, errors.Wrapf(ErrUnknownEnsembleType, "%d", int32(e.kind))
	}
	return json.Marshal(out)
}

func (e *SplitEnsemble) UnmarshalJSON(data []byte) error {
	var in splitEnsembleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(err, "decoding split ensemble")
	}
	switch in.Type {
	case OneFeature:
		if in.SplitCandidate == nil {
			return errors.New("one feature ensemble without split_candidate")
		}
		*e = NewOneFeatureEnsemble(*in.SplitCandidate)
	case BinarySplits:
		if in.PackIdx == nil {
			return errors.New("binary splits ensemble without pack_idx")
		}
		*e = NewBinarySplitsEnsemble(*in.PackIdx)
	case ExclusiveBundle:
		if in.BundleIdx == nil {
			return errors.New("exclusive bundle ensemble without bundle_idx")
		}
		*e = NewExclusiveBundleEnsemble(*in.BundleIdx)
	default:
		return errors.Wrapf(ErrUnknownEnsembleType, "%d", int32(in.Type))
	}
	return nil
}
