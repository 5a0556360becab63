package obl

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Binary layout: little endian; ints as int32, ctr fields as uint8, indices as uint32,
// enums as int32, slices prefixed with a uint32 length. Every field is written,
// including the inactive payloads of split candidates and ensembles.

type binWriter struct {
	w   io.Writer
	err error
}

func (bw *binWriter) put(value interface{}) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.LittleEndian, value)
}

func (bw *binWriter) putInt(value int) {
	if value < math.MinInt32 || value > math.MaxInt32 {
		if bw.err == nil {
			bw.err = errors.Errorf("value %d does not fit into int32", value)
		}
		return
	}
	bw.put(int32(value))
}

func (bw *binWriter) putLen(n int) {
	bw.put(uint32(n))
}

type binReader struct {
	r   io.Reader
	err error
}

func (br *binReader) get(value interface{}) {
	if br.err != nil {
		return
	}
	if err := binary.Read(br.r, binary.LittleEndian, value); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrTruncated
		}
		br.err = err
	}
}

func (br *binReader) getInt() int {
	var value int32
	br.get(&value)
	return int(value)
}

// maxLen bounds slice lengths read from untrusted input.
const maxLen = 1 << 24

func (br *binReader) getLen() int {
	var n uint32
	br.get(&n)
	if br.err == nil && n > maxLen {
		br.err = errors.Errorf("length %d exceeds %d", n, maxLen)
	}
	if br.err != nil {
		return 0
	}
	return int(n)
}

func (p Projection) save(bw *binWriter) {
	bw.putLen(len(p.CatFeatures))
	for _, f := range p.CatFeatures {
		bw.putInt(f)
	}
	bw.putLen(len(p.BinFeatures))
	for _, f := range p.BinFeatures {
		bw.putInt(f.FloatFeature)
		bw.putInt(f.SplitIdx)
	}
	bw.putLen(len(p.OneHotFeatures))
	for _, f := range p.OneHotFeatures {
		bw.putInt(f.CatFeatureIdx)
		bw.putInt(f.Value)
	}
}

func (p *Projection) load(br *binReader) {
	*p = Projection{}
	if n := br.getLen(); n > 0 {
		p.CatFeatures = make([]int, n)
		for i := range p.CatFeatures {
			p.CatFeatures[i] = br.getInt()
		}
	}
	if n := br.getLen(); n > 0 {
		p.BinFeatures = make([]BinFeature, n)
		for i := range p.BinFeatures {
			p.BinFeatures[i] = BinFeature{FloatFeature: br.getInt(), SplitIdx: br.getInt()}
		}
	}
	if n := br.getLen(); n > 0 {
		p.OneHotFeatures = make([]OneHotSplit, n)
		for i := range p.OneHotFeatures {
			p.OneHotFeatures[i] = OneHotSplit{CatFeatureIdx: br.getInt(), Value: br.getInt()}
		}
	}
}

func (c Ctr) save(bw *binWriter) {
	c.Projection.save(bw)
	bw.put([4]uint8{c.CtrIdx, c.TargetBorderIdx, c.PriorIdx, c.BorderCount})
}

func (c *Ctr) load(br *binReader) {
	c.Projection.load(br)
	var fields [4]uint8
	br.get(&fields)
	c.CtrIdx, c.TargetBorderIdx, c.PriorIdx, c.BorderCount = fields[0], fields[1], fields[2], fields[3]
}

func (c SplitCandidate) save(bw *binWriter) {
	c.Ctr.save(bw)
	bw.putInt(c.FeatureIdx)
	bw.put(int32(c.Type))
}

func (c *SplitCandidate) load(br *binReader) {
	c.Ctr.load(br)
	c.FeatureIdx = br.getInt()
	var splitType int32
	br.get(&splitType)
	c.Type = SplitType(splitType)
	if br.err == nil && !c.Type.valid() {
		br.err = errors.Wrapf(ErrUnknownSplitType, "%d", splitType)
	}
}

func (e SplitEnsemble) save(bw *binWriter) {
	bw.put(int32(e.kind))
	e.candidate.save(bw)
	bw.put(e.pack.PackIdx)
	bw.put(e.bundle.BundleIdx)
}

func (e *SplitEnsemble) load(br *binReader) {
	var kind int32
	br.get(&kind)
	e.kind = EnsembleType(kind)
	if br.err == nil && !e.kind.valid() {
		br.err = errors.Wrapf(ErrUnknownEnsembleType, "%d", kind)
	}
	e.candidate.load(br)
	br.get(&e.pack.PackIdx)
	br.get(&e.bundle.BundleIdx)
}

func (b ExclusiveFeaturesBundle) save(bw *binWriter) {
	bw.put(b.SizeInBytes)
	bw.putLen(len(b.Parts))
	for _, part := range b.Parts {
		bw.put(int32(part.FeatureType))
		bw.put(part.FeatureIdx)
		bw.put(part.Bounds.Begin)
		bw.put(part.Bounds.End)
	}
}

func (b *ExclusiveFeaturesBundle) load(br *binReader) {
	*b = ExclusiveFeaturesBundle{}
	br.get(&b.SizeInBytes)
	n := br.getLen()
	if n == 0 {
		return
	}
	b.Parts = make([]ExclusiveBundlePart, n)
	for i := range b.Parts {
		var featureType int32
		br.get(&featureType)
		b.Parts[i].FeatureType = FeatureType(featureType)
		if br.err == nil && !b.Parts[i].FeatureType.valid() {
			br.err = errors.Wrapf(ErrUnknownFeatureType, "%d", featureType)
		}
		br.get(&b.Parts[i].FeatureIdx)
		br.get(&b.Parts[i].Bounds.Begin)
		br.get(&b.Parts[i].Bounds.End)
	}
}

func (s SplitEnsembleSpec) save(bw *binWriter) {
	bw.put(int32(s.Type))
	bw.put(int32(s.OneSplitType))
	s.ExclusiveFeaturesBundle.save(bw)
}

func (s *SplitEnsembleSpec) load(br *binReader) {
	var kind, splitType int32
	br.get(&kind)
	br.get(&splitType)
	s.Type, s.OneSplitType = EnsembleType(kind), SplitType(splitType)
	if br.err == nil && !s.Type.valid() {
		br.err = errors.Wrapf(ErrUnknownEnsembleType, "%d", kind)
	}
	if br.err == nil && !s.OneSplitType.valid() {
		br.err = errors.Wrapf(ErrUnknownSplitType, "%d", splitType)
	}
	s.ExclusiveFeaturesBundle.load(br)
}

func (s Split) save(bw *binWriter) {
	s.SplitCandidate.save(bw)
	bw.putInt(s.BinBorder)
}

func (s *Split) load(br *binReader) {
	s.SplitCandidate.load(br)
	s.BinBorder = br.getInt()
}

func (t SplitTree) save(bw *binWriter) {
	bw.putLen(len(t.Splits))
	for _, split := range t.Splits {
		split.save(bw)
	}
}

func (t *SplitTree) load(br *binReader) {
	*t = SplitTree{}
	n := br.getLen()
	if br.err == nil && n > MaxTreeDepth {
		br.err = errors.Errorf("tree depth %d exceeds %d", n, MaxTreeDepth)
	}
	if br.err != nil || n == 0 {
		return
	}
	t.Splits = make([]Split, n)
	for i := range t.Splits {
		t.Splits[i].load(br)
	}
}

func (s TreeStats) save(bw *binWriter) {
	bw.putLen(len(s.LeafWeightsSum))
	bw.put(s.LeafWeightsSum)
}

func (s *TreeStats) load(br *binReader) {
	*s = TreeStats{}
	n := br.getLen()
	if n == 0 {
		return
	}
	s.LeafWeightsSum = make([]float64, n)
	br.get(s.LeafWeightsSum)
}

func save(w io.Writer, what string, saveFn func(*binWriter)) error {
	bw := &binWriter{w: w}
	saveFn(bw)
	return errors.Wrapf(bw.err, "saving %s", what)
}

func load(r io.Reader, what string, loadFn func(*binReader)) error {
	br := &binReader{r: r}
	loadFn(br)
	return errors.Wrapf(br.err, "loading %s", what)
}

func (p Projection) Save(w io.Writer) error         { return save(w, "projection", p.save) }
func (p *Projection) Load(r io.Reader) error        { return load(r, "projection", p.load) }
func (c Ctr) Save(w io.Writer) error                { return save(w, "ctr", c.save) }
func (c *Ctr) Load(r io.Reader) error               { return load(r, "ctr", c.load) }
func (c SplitCandidate) Save(w io.Writer) error     { return save(w, "split candidate", c.save) }
func (c *SplitCandidate) Load(r io.Reader) error    { return load(r, "split candidate", c.load) }
func (e SplitEnsemble) Save(w io.Writer) error      { return save(w, "split ensemble", e.save) }
func (e *SplitEnsemble) Load(r io.Reader) error     { return load(r, "split ensemble", e.load) }
func (s SplitEnsembleSpec) Save(w io.Writer) error  { return save(w, "split ensemble spec", s.save) }
func (s *SplitEnsembleSpec) Load(r io.Reader) error { return load(r, "split ensemble spec", s.load) }
func (s Split) Save(w io.Writer) error              { return save(w, "split", s.save) }
func (s *Split) Load(r io.Reader) error             { return load(r, "split", s.load) }
func (t SplitTree) Save(w io.Writer) error          { return save(w, "split tree", t.save) }
func (t *SplitTree) Load(r io.Reader) error         { return load(r, "split tree", t.load) }
func (s TreeStats) Save(w io.Writer) error          { return save(w, "tree stats", s.save) }
func (s *TreeStats) Load(r io.Reader) error         { return load(r, "tree stats", s.load) }
