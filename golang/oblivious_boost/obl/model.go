package obl

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

var modelMagic = [4]byte{'O', 'B', 'L', 'T'}

const modelFormatVersion uint32 = 1

//Model is a sequence of oblivious trees with optional per-tree statistics.
//When Stats is not empty it holds exactly one entry per tree.
type Model struct {
	Trees []SplitTree `json:"trees"`
	Stats []TreeStats `json:"stats,omitempty"`
}

func (m Model) validate() error {
	if len(m.Stats) != 0 && len(m.Stats) != len(m.Trees) {
		return errors.Errorf("%d tree stats for %d trees", len(m.Stats), len(m.Trees))
	}
	for ind, stats := range m.Stats {
		if len(stats.LeafWeightsSum) != m.Trees[ind].GetLeafCount() {
			return errors.Errorf("tree %d has %d leaves but %d leaf weights",
				ind, m.Trees[ind].GetLeafCount(), len(stats.LeafWeightsSum))
		}
	}
	return nil
}

//Write encodes the model into an lz4 frame.
func (m Model) Write(w io.Writer) error {
	if err := m.validate(); err != nil {
		return errors.Wrap(err, "writing model")
	}
	zw := lz4.NewWriter(w)
	bw := &binWriter{w: zw}
	bw.put(modelMagic)
	bw.put(modelFormatVersion)
	bw.putLen(len(m.Trees))
	for _, tree := range m.Trees {
		tree.save(bw)
	}
	bw.putLen(len(m.Stats))
	for _, stats := range m.Stats {
		stats.save(bw)
	}
	if bw.err != nil {
		return errors.Wrap(bw.err, "writing model")
	}
	return errors.Wrap(zw.Close(), "closing lz4 frame")
}

//ReadModel decodes a model written by Model.Write.
func ReadModel(r io.Reader) (m Model, err error) {
	br := &binReader{r: lz4.NewReader(r)}
	var magic [4]byte
	br.get(&magic)
	if br.err == nil && magic != modelMagic {
		return Model{}, ErrBadMagic
	}
	var version uint32
	br.get(&version)
	if br.err == nil && version != modelFormatVersion {
		return Model{}, errors.Errorf("unsupported model format version %d", version)
	}
	if n := br.getLen(); n > 0 {
		m.Trees = make([]SplitTree, n)
		for i := range m.Trees {
			m.Trees[i].load(br)
		}
	}
	if n := br.getLen(); n > 0 {
		m.Stats = make([]TreeStats, n)
		for i := range m.Stats {
			m.Stats[i].load(br)
		}
	}
	if br.err != nil {
		return Model{}, errors.Wrap(br.err, "reading model")
	}
	return m, errors.Wrap(m.validate(), "reading model")
}

func (m Model) Save(filename string) (err error) {
	dest, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "can't open file %s to write", filename)
	}
	defer func() {
		if closeErr := dest.Close(); err == nil {
			err = closeErr
		}
	}()

	buffered := bufio.NewWriter(dest)
	if err = m.Write(buffered); err != nil {
		return err
	}
	return buffered.Flush()
}

func LoadModel(filename string) (Model, error) {
	source, err := os.Open(filename)
	if err != nil {
		return Model{}, errors.Wrapf(err, "can't open model %s", filename)
	}
	defer source.Close()

	log.Debugf("loading model from %s", filename)
	return ReadModel(bufio.NewReader(source))
}

//DumpJSON writes a human readable copy of the model.
func (m Model) DumpJSON(filename string) error {
	modelByteRepr, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding model")
	}
	return errors.Wrapf(os.WriteFile(filename, modelByteRepr, 0o644), "writing %s", filename)
}
