package obl

import "fmt"

//Ctr identifies a categorical target statistic: the projection it is computed over, the index
//of the statistic kind, the target border used to binarize the label, the prior and the number
//of borders the statistic is quantized into. It carries no computed data.
type Ctr struct {
	Projection      Projection `json:"projection"`
	CtrIdx          uint8      `json:"ctr_idx"`
	TargetBorderIdx uint8      `json:"target_border_idx"`
	PriorIdx        uint8      `json:"prior_idx"`
	BorderCount     uint8      `json:"border_count"`
}

func NewCtr(proj Projection, ctrIdx, targetBorderIdx, priorIdx, borderCount uint8) Ctr {
	return Ctr{
		Projection:      proj,
		CtrIdx:          ctrIdx,
		TargetBorderIdx: targetBorderIdx,
		PriorIdx:        priorIdx,
		BorderCount:     borderCount,
	}
}

//Equal compares all five fields.
func (c Ctr) Equal(other Ctr) bool {
	return c.Projection.Equal(other.Projection) &&
		c.CtrIdx == other.CtrIdx &&
		c.TargetBorderIdx == other.TargetBorderIdx &&
		c.PriorIdx == other.PriorIdx &&
		c.BorderCount == other.BorderCount
}

func (c Ctr) GetHash() uint64 {
	return multiHash(
		c.Projection.GetHash(),
		uint64(c.CtrIdx),
		uint64(c.TargetBorderIdx),
		uint64(c.PriorIdx),
		uint64(c.BorderCount),
	)
}

func (c Ctr) String() string {
	return fmt.Sprintf("ctr{%s; type %d, target border %d, prior %d, borders %d}",
		c.Projection, c.CtrIdx, c.TargetBorderIdx, c.PriorIdx, c.BorderCount)
}

//appendKey writes a canonical encoding of the ctr that agrees with Equal.
func (c Ctr) appendKey(b []byte) []byte {
	p := c.Projection
	b = appendWord(b, uint64(len(p.CatFeatures)))
	for _, f := range p.CatFeatures {
		b = appendWord(b, intWord(f))
	}
	b = appendWord(b, uint64(len(p.BinFeatures)))
	for _, f := range p.BinFeatures {
		b = appendWord(appendWord(b, intWord(f.FloatFeature)), intWord(f.SplitIdx))
	}
	b = appendWord(b, uint64(len(p.OneHotFeatures)))
	for _, f := range p.OneHotFeatures {
		b = appendWord(appendWord(b, intWord(f.CatFeatureIdx)), intWord(f.Value))
	}
	return append(b, c.CtrIdx, c.TargetBorderIdx, c.PriorIdx, c.BorderCount)
}
