package obl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionIsOrderIndependent(t *testing.T) {
	a := NewCatProjection(5, 1, 3)
	b := NewCatProjection(3, 5, 1)
	b.AddCatFeature(1)

	assert.Equal(t, []int{1, 3, 5}, a.CatFeatures)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.GetHash(), b.GetHash())
}

func TestProjectionAddKeepsCopiesIntact(t *testing.T) {
	original := NewCatProjection(1, 2)
	copied := original
	copied.AddCatFeature(0)

	assert.Equal(t, []int{1, 2}, original.CatFeatures)
	assert.Equal(t, []int{0, 1, 2}, copied.CatFeatures)
	assert.False(t, original.Equal(copied))
}

func TestProjectionHashSeparatesLists(t *testing.T) {
	var asBin, asOneHot Projection
	asBin.AddBinFeature(BinFeature{FloatFeature: 1, SplitIdx: 2})
	asOneHot.AddOneHotFeature(OneHotSplit{CatFeatureIdx: 1, Value: 2})

	assert.False(t, asBin.Equal(asOneHot))
	assert.NotEqual(t, asBin.GetHash(), asOneHot.GetHash())
}

func TestProjectionPredicates(t *testing.T) {
	assert.True(t, Projection{}.IsEmpty())
	assert.True(t, NewCatProjection(4).IsSingleCatFeature())
	assert.True(t, NewCatProjection(4).HasSingleFeature())
	assert.False(t, NewCatProjection(4, 5).HasSingleFeature())

	proj := Projection{}
	proj.AddOneHotFeature(OneHotSplit{CatFeatureIdx: 1, Value: 1})
	assert.True(t, proj.HasSingleFeature())
	assert.False(t, proj.IsSingleCatFeature())
}

func TestCtrEqualityIsFieldWise(t *testing.T) {
	base := createTestCtr()
	require.True(t, base.Equal(createTestCtr()))
	require.Equal(t, base.GetHash(), createTestCtr().GetHash())

	mutations := map[string]func(*Ctr){
		"projection":   func(c *Ctr) { c.Projection.AddCatFeature(10) },
		"ctr idx":      func(c *Ctr) { c.CtrIdx++ },
		"target bord":  func(c *Ctr) { c.TargetBorderIdx++ },
		"prior":        func(c *Ctr) { c.PriorIdx++ },
		"border count": func(c *Ctr) { c.BorderCount++ },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			changed := createTestCtr()
			mutate(&changed)
			assert.False(t, base.Equal(changed))
			assert.NotEqual(t, base.GetHash(), changed.GetHash())
		})
	}
}

func TestCtrHashIsOrderSensitive(t *testing.T) {
	a := NewCtr(NewCatProjection(0), 1, 2, 0, 0)
	b := NewCtr(NewCatProjection(0), 2, 1, 0, 0)
	assert.NotEqual(t, a.GetHash(), b.GetHash())
}

func TestSplitCandidateHashConsistency(t *testing.T) {
	candidates := []SplitCandidate{
		NewFloatSplitCandidate(0),
		NewFloatSplitCandidate(1),
		NewOneHotSplitCandidate(0),
		NewOneHotSplitCandidate(1),
		NewCtrSplitCandidate(createTestCtr()),
		NewCtrSplitCandidate(NewCtr(NewCatProjection(0), 0, 0, 0, 1)),
	}
	for i, a := range candidates {
		for j, b := range candidates {
			if a.Equal(b) {
				assert.Equal(t, a.GetHash(), b.GetHash(), "%v vs %v", a, b)
			}
			if a.GetHash() != b.GetHash() {
				assert.False(t, a.Equal(b), "%v vs %v", a, b)
			}
			assert.Equal(t, i == j, a.Equal(b), "%v vs %v", a, b)
		}
	}
}

func TestFloatAndOneHotCandidatesNeverCollide(t *testing.T) {
	for featureIdx := -1; featureIdx < 64; featureIdx++ {
		float := NewFloatSplitCandidate(featureIdx)
		oneHot := NewOneHotSplitCandidate(featureIdx)
		assert.False(t, float.Equal(oneHot))
		assert.NotEqual(t, float.GetHash(), oneHot.GetHash())
	}
}

func TestOnlineCtrIgnoresStaleFeatureIdx(t *testing.T) {
	fresh := NewCtrSplitCandidate(createTestCtr())
	for _, stale := range []int{-1, 0, 7, 1 << 20} {
		withStale := fresh
		withStale.FeatureIdx = stale
		assert.True(t, fresh.Equal(withStale))
		assert.Equal(t, fresh.GetHash(), withStale.GetHash())
		assert.Equal(t, fresh.AppendKey(nil), withStale.AppendKey(nil))
	}
}

func TestFloatCandidateIgnoresStaleCtr(t *testing.T) {
	plain := NewFloatSplitCandidate(3)
	withCtr := plain
	withCtr.Ctr = createTestCtr()

	assert.True(t, plain.Equal(withCtr))
	assert.Equal(t, plain.GetHash(), withCtr.GetHash())
}

func TestSplitCandidateHashPanicsOnUnknownType(t *testing.T) {
	broken := SplitCandidate{Type: SplitType(42)}
	assert.Panics(t, func() { broken.GetHash() })
}

func TestSplitTypeText(t *testing.T) {
	for _, splitType := range []SplitType{FloatFeature, OneHotFeature, OnlineCtr} {
		text, err := splitType.MarshalText()
		require.NoError(t, err)
		var decoded SplitType
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, splitType, decoded)
	}
	var decoded SplitType
	assert.ErrorIs(t, decoded.UnmarshalText([]byte("Oblique")), ErrUnknownSplitType)
}
