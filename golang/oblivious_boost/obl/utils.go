package obl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "obl")

var (
	ErrUnknownSplitType    = errors.New("unknown split type")
	ErrUnknownEnsembleType = errors.New("unknown split ensemble type")
	ErrUnknownFeatureType  = errors.New("unknown feature type")
	ErrTruncated           = errors.New("truncated input")
	ErrBadMagic            = errors.New("not a model file")
)

//HandleError panics if err is not nil. It is meant for glue code where a failure is a programming error.
func HandleError(err error) {
	if err != nil {
		log.Panic(err)
	}
}
