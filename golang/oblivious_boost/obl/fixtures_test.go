package obl

//createTestProjection returns a projection over two categorical features combined with a binarized float feature.
func createTestProjection() Projection {
	proj := NewCatProjection(3, 1)
	proj.AddBinFeature(BinFeature{FloatFeature: 2, SplitIdx: 7})
	return proj
}

func createTestCtr() Ctr {
	return NewCtr(createTestProjection(), 1, 0, 2, 15)
}

func createTestBundles() []ExclusiveFeaturesBundle {
	return []ExclusiveFeaturesBundle{
		{
			SizeInBytes: 1,
			Parts: []ExclusiveBundlePart{
				{FeatureType: Float, FeatureIdx: 4, Bounds: BoundsInBundle{Begin: 1, End: 4}},
				{FeatureType: Categorical, FeatureIdx: 0, Bounds: BoundsInBundle{Begin: 4, End: 9}},
			},
		},
		{
			SizeInBytes: 2,
			Parts: []ExclusiveBundlePart{
				{FeatureType: Categorical, FeatureIdx: 1, Bounds: BoundsInBundle{Begin: 1, End: 300}},
			},
		},
	}
}

func createTestQuantizedFeatures() QuantizedFeatures {
	return QuantizedFeatures{
		Borders: [][]float32{
			{0.5, 1.5, 2.5},
			{-1},
			{},
		},
		UniqueValuesCounts: []int{5, 12},
	}
}

//createTestSplitTree returns a tree with one split of every kind.
func createTestSplitTree() SplitTree {
	var tree SplitTree
	tree.AddSplit(NewSplit(NewFloatSplitCandidate(0), 2))
	tree.AddSplit(NewSplit(NewCtrSplitCandidate(createTestCtr()), 9))
	tree.AddSplit(NewSplit(NewOneHotSplitCandidate(1), 4))
	return tree
}
