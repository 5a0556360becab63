package obl

import (
	"fmt"

	"github.com/pkg/errors"
)

//SplitType is the kind of a single split axis.
type SplitType int32

const (
	FloatFeature SplitType = iota
	OneHotFeature
	OnlineCtr
)

var splitTypeNames = []string{"FloatFeature", "OneHotFeature", "OnlineCtr"}

func (t SplitType) String() string {
	if t.valid() {
		return splitTypeNames[t]
	}
	return fmt.Sprintf("SplitType(%d)", int32(t))
}

func (t SplitType) valid() bool {
	return t >= FloatFeature && t <= OnlineCtr
}

func (t SplitType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, errors.Wrapf(ErrUnknownSplitType, "%d", int32(t))
	}
	return []byte(t.String()), nil
}

func (t *SplitType) UnmarshalText(text []byte) error {
	for ind, name := range splitTypeNames {
		if name == string(text) {
			*t = SplitType(ind)
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownSplitType, "%q", text)
}

//EnsembleType is the discriminant of SplitEnsemble.
type EnsembleType int32

const (
	OneFeature EnsembleType = iota
	BinarySplits
	ExclusiveBundle
)

var ensembleTypeNames = []string{"OneFeature", "BinarySplits", "ExclusiveBundle"}

func (t EnsembleType) String() string {
	if t.valid() {
		return ensembleTypeNames[t]
	}
	return fmt.Sprintf("EnsembleType(%d)", int32(t))
}

func (t EnsembleType) valid() bool {
	return t >= OneFeature && t <= ExclusiveBundle
}

func (t EnsembleType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, errors.Wrapf(ErrUnknownEnsembleType, "%d", int32(t))
	}
	return []byte(t.String()), nil
}

func (t *EnsembleType) UnmarshalText(text []byte) error {
	for ind, name := range ensembleTypeNames {
		if name == string(text) {
			*t = EnsembleType(ind)
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownEnsembleType, "%q", text)
}

//FeatureType tells whether a raw feature is numeric or categorical.
type FeatureType int32

const (
	Float FeatureType = iota
	Categorical
)

func (t FeatureType) String() string {
	switch t {
	case Float:
		return "Float"
	case Categorical:
		return "Categorical"
	}
	return fmt.Sprintf("FeatureType(%d)", int32(t))
}

func (t FeatureType) valid() bool {
	return t == Float || t == Categorical
}

func (t FeatureType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, errors.Wrapf(ErrUnknownFeatureType, "%d", int32(t))
	}
	return []byte(t.String()), nil
}

func (t *FeatureType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Float":
		*t = Float
	case "Categorical":
		*t = Categorical
	default:
		return errors.Wrapf(ErrUnknownFeatureType, "%q", text)
	}
	return nil
}
