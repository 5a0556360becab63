package obl

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//TreeStats holds the sum of learn weights that fell into every leaf of a finished tree.
type TreeStats struct {
	LeafWeightsSum []float64 `json:"leaf_weights_sum"`
}

//ComputeTreeStats sums weights per leaf. leafIndices[i] is the leaf of object i;
//a nil weights slice means unit weights.
func ComputeTreeStats(tree SplitTree, leafIndices []int, weights []float64) TreeStats {
	if weights != nil && len(weights) != len(leafIndices) {
		log.Panicf("%d weights for %d objects", len(weights), len(leafIndices))
	}
	leafCount := tree.GetLeafCount()
	stats := TreeStats{LeafWeightsSum: make([]float64, leafCount)}
	for i, leaf := range leafIndices {
		if leaf < 0 || leaf >= leafCount {
			log.Panicf("object %d falls into leaf %d, the tree has %d leaves", i, leaf, leafCount)
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		stats.LeafWeightsSum[leaf] += w
	}
	return stats
}

func (s TreeStats) TotalWeight() float64 {
	return floats.Sum(s.LeafWeightsSum)
}

//LeafShares returns the fraction of the total weight in every leaf, all zeros for an empty tree.
func (s TreeStats) LeafShares() []float64 {
	shares := make([]float64, len(s.LeafWeightsSum))
	total := s.TotalWeight()
	if total == 0 {
		return shares
	}
	floats.ScaleTo(shares, 1/total, s.LeafWeightsSum)
	return shares
}

func (s TreeStats) Equal(other TreeStats) bool {
	return floats.Equal(s.LeafWeightsSum, other.LeafWeightsSum)
}

//SaveNpy writes leaf weights as an n×1 npy array.
func (s TreeStats) SaveNpy(fileName string) (err error) {
	if len(s.LeafWeightsSum) == 0 {
		return errors.New("can't save empty tree stats")
	}
	dst, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "can't create %s", fileName)
	}
	defer func() {
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
	}()

	column := mat.NewDense(len(s.LeafWeightsSum), 1, append([]float64(nil), s.LeafWeightsSum...))
	return errors.Wrapf(npyio.Write(dst, column), "writing %s", fileName)
}

func LoadTreeStatsNpy(fileName string) (TreeStats, error) {
	column, err := ReadNpy(fileName)
	if err != nil {
		return TreeStats{}, err
	}
	return TreeStats{LeafWeightsSum: mat.Col(nil, 0, column)}, nil
}

//ReadNpy reads the content of an npy file into a dense matrix.
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s", fileName)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading npy header of %s", fileName)
	}

	denseMat := &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "reading %s", fileName)
	}
	return denseMat, nil
}
