// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"io"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	trees             = make(map[uint64]*obl.SplitTree)

	lastErrorMu sync.Mutex
	lastError   string

	logSilenceOnce sync.Once
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func storeTree(tree *obl.SplitTree) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	trees[handle] = tree
	nextHandle++
	return handle
}

//withTree runs fn on the tree behind handle under the registry lock and turns panics raised
//by violated preconditions into the last error.
func withTree(handle C.ulonglong, fn func(tree *obl.SplitTree) error) (err error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	tree, ok := trees[uint64(handle)]
	if !ok {
		return errors.New("invalid split tree handle")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(tree)
}

func status(err error, code C.int) C.int {
	setLastError(err)
	if err != nil {
		return code
	}
	return 0
}

//export NewSplitTree
func NewSplitTree() C.ulonglong {
	setLastError(nil)
	logSilenceOnce.Do(func() {
		logrus.SetOutput(io.Discard)
	})
	return C.ulonglong(storeTree(&obl.SplitTree{}))
}

//export FreeSplitTree
func FreeSplitTree(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(trees, uint64(handle))
}

//export AddFloatSplit
func AddFloatSplit(handle C.ulonglong, featureIdx, binBorder C.int) C.int {
	err := withTree(handle, func(tree *obl.SplitTree) error {
		if featureIdx < 0 || binBorder < 0 {
			return errors.Errorf("negative float split (%d, %d)", featureIdx, binBorder)
		}
		tree.AddSplit(obl.NewSplit(obl.NewFloatSplitCandidate(int(featureIdx)), int(binBorder)))
		return nil
	})
	return status(err, 1)
}

//export AddOneHotSplit
func AddOneHotSplit(handle C.ulonglong, catFeatureIdx, value C.int) C.int {
	err := withTree(handle, func(tree *obl.SplitTree) error {
		if catFeatureIdx < 0 || value < 0 {
			return errors.Errorf("negative one-hot split (%d, %d)", catFeatureIdx, value)
		}
		tree.AddSplit(obl.NewSplit(obl.NewOneHotSplitCandidate(int(catFeatureIdx)), int(value)))
		return nil
	})
	return status(err, 1)
}

//export DeleteSplit
func DeleteSplit(handle C.ulonglong, splitIdx C.int) C.int {
	err := withTree(handle, func(tree *obl.SplitTree) error {
		tree.DeleteSplit(int(splitIdx))
		return nil
	})
	return status(err, 1)
}

//export GetDepth
func GetDepth(handle C.ulonglong) C.int {
	depth := -1
	err := withTree(handle, func(tree *obl.SplitTree) error {
		depth = tree.GetDepth()
		return nil
	})
	setLastError(err)
	return C.int(depth)
}

//export GetLeafCount
func GetLeafCount(handle C.ulonglong) C.longlong {
	leafCount := -1
	err := withTree(handle, func(tree *obl.SplitTree) error {
		leafCount = tree.GetLeafCount()
		return nil
	})
	setLastError(err)
	return C.longlong(leafCount)
}

//ComputeLeafIndices fills out[i] with the leaf of object i. goesRight is a row-major
//rows x depth matrix of 0/1 split outcomes.
//
//export ComputeLeafIndices
func ComputeLeafIndices(handle C.ulonglong, goesRightPtr *C.uchar, rows C.int, outPtr *C.longlong) C.int {
	err := withTree(handle, func(tree *obl.SplitTree) error {
		if rows < 0 {
			return errors.New("negative length")
		}
		if rows == 0 {
			return nil
		}
		depth := tree.GetDepth()
		if outPtr == nil || (goesRightPtr == nil && depth > 0) {
			return errors.New("null pointer for non-empty slice")
		}
		var goesRight []byte
		if depth > 0 {
			goesRight = unsafe.Slice((*byte)(unsafe.Pointer(goesRightPtr)), int(rows)*depth)
		}
		out := unsafe.Slice((*int64)(unsafe.Pointer(outPtr)), int(rows))
		for row := range out {
			out[row] = int64(tree.GetLeafIndex(func(level int, _ obl.Split) bool {
				return goesRight[row*depth+level] != 0
			}))
		}
		return nil
	})
	return status(err, 1)
}

//SaveSplitTree writes the tree as a single-tree model file.
//
//export SaveSplitTree
func SaveSplitTree(handle C.ulonglong, path *C.char) C.int {
	goPath := C.GoString(path)
	err := withTree(handle, func(tree *obl.SplitTree) error {
		return obl.Model{Trees: []obl.SplitTree{tree.Clone()}}.Save(goPath)
	})
	return status(err, 1)
}

//LoadSplitTree loads tree treeIdx of a model file and returns its handle, 0 on failure.
//
//export LoadSplitTree
func LoadSplitTree(path *C.char, treeIdx C.int) C.ulonglong {
	setLastError(nil)
	model, err := obl.LoadModel(C.GoString(path))
	if err != nil {
		setLastError(err)
		return 0
	}
	if treeIdx < 0 || int(treeIdx) >= len(model.Trees) {
		setLastError(errors.Errorf("tree %d requested, the model has %d trees", treeIdx, len(model.Trees)))
		return 0
	}
	tree := model.Trees[treeIdx]
	return C.ulonglong(storeTree(&tree))
}

//export RenderSplitTree
func RenderSplitTree(handle C.ulonglong, prefix, figureType, directory *C.char) C.int {
	goPrefix := C.GoString(prefix)
	goFigureType := C.GoString(figureType)
	goDir := C.GoString(directory)
	if goPrefix == "" {
		goPrefix = "tree"
	}
	if goFigureType == "" {
		goFigureType = "svg"
	}
	if goDir == "" {
		goDir = "."
	}
	err := withTree(handle, func(tree *obl.SplitTree) error {
		return obl.Model{Trees: []obl.SplitTree{*tree}}.RenderTrees(goPrefix, goFigureType, goDir)
	})
	return status(err, 1)
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
