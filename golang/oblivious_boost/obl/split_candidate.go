package obl

import "fmt"

//SplitCandidate is one split axis: a float feature, a one-hot categorical feature or an online CTR.
//Only the field selected by Type takes part in equality and hashing: FeatureIdx for float and
//one-hot candidates, Ctr for online CTR candidates. The other field may hold stale values.
type SplitCandidate struct {
	Ctr        Ctr       `json:"ctr"`
	FeatureIdx int       `json:"feature_idx"`
	Type       SplitType `json:"type"`
}

func NewFloatSplitCandidate(featureIdx int) SplitCandidate {
	return SplitCandidate{FeatureIdx: featureIdx, Type: FloatFeature}
}

func NewOneHotSplitCandidate(featureIdx int) SplitCandidate {
	return SplitCandidate{FeatureIdx: featureIdx, Type: OneHotFeature}
}

func NewCtrSplitCandidate(ctr Ctr) SplitCandidate {
	return SplitCandidate{Ctr: ctr, FeatureIdx: -1, Type: OnlineCtr}
}

func (c SplitCandidate) Equal(other SplitCandidate) bool {
	if c.Type != other.Type {
		return false
	}
	switch c.Type {
	case FloatFeature, OneHotFeature:
		return c.FeatureIdx == other.FeatureIdx
	case OnlineCtr:
		return c.Ctr.Equal(other.Ctr)
	}
	return false
}

func (c SplitCandidate) GetHash() uint64 {
	switch c.Type {
	case FloatFeature:
		return multiHash(FloatFeatureBaseHash, intWord(c.FeatureIdx))
	case OnlineCtr:
		return multiHash(CtrBaseHash, c.Ctr.GetHash())
	case OneHotFeature:
		return multiHash(OneHotFeatureBaseHash, intWord(c.FeatureIdx))
	}
	log.Panicf("can't hash a split candidate of type %v", c.Type)
	return 0
}

//AppendKey appends a byte key that is equal for two candidates exactly when Equal holds.
func (c SplitCandidate) AppendKey(b []byte) []byte {
	b = append(b, byte(c.Type))
	if c.Type == OnlineCtr {
		return c.Ctr.appendKey(b)
	}
	return appendWord(b, intWord(c.FeatureIdx))
}

func (c SplitCandidate) String() string {
	switch c.Type {
	case FloatFeature:
		return fmt.Sprintf("f_%d", c.FeatureIdx)
	case OneHotFeature:
		return fmt.Sprintf("c_%d", c.FeatureIdx)
	case OnlineCtr:
		return c.Ctr.String()
	}
	return c.Type.String()
}
