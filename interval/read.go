// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interval

import (
	"context"
	"io"

	"github.com/grailbio/ancestral/util"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

const (
	// Columns of MUMmer "show-coords -H -T" output.
	coordStartCol = 0
	coordStopCol  = 1
	coordTagCol   = 7

	// MaxLabelLen is the number of bytes of a gene name that are kept.
	MaxLabelLen = 49
)

func checkColumns(row []string, n, line int) error {
	if len(row) < n {
		return errors.Errorf("line %d: expected at least %d columns, got %d", line, n, len(row))
	}
	return nil
}

func parseRange(startStr, stopStr string, line int) (start, stop PosType, err error) {
	if start, err = util.ParsePos(startStr); err != nil {
		return 0, 0, errors.Wrapf(err, "line %d: start", line)
	}
	if stop, err = util.ParsePos(stopStr); err != nil {
		return 0, 0, errors.Wrapf(err, "line %d: stop", line)
	}
	if stop < start {
		return 0, 0, errors.Errorf("line %d: stop %d precedes start %d", line, stop, start)
	}
	return start, stop, nil
}

// ReadAlignment loads the alignable blocks from the tab-separated output of
// MUMmer "show-coords -H -T".  Columns 0 and 1 hold the block's reference
// start and stop, and column 7 the reference sequence tag, which must be a
// chromosome number; rows with any other tag are skipped.
func ReadAlignment(r io.Reader) (*Index, error) {
	var (
		regions  []Region
		nSkipped int
	)
	err := util.ScanRows(r, func(row []string, line int) error {
		if err := checkColumns(row, coordTagCol+1, line); err != nil {
			return err
		}
		chr, ok := util.ParseChr(row[coordTagCol])
		if !ok {
			nSkipped++
			return nil
		}
		start, stop, err := parseRange(row[coordStartCol], row[coordStopCol], line)
		if err != nil {
			return err
		}
		regions = append(regions, Region{Chr: chr, Start: start, Stop: stop})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("interval.ReadAlignment: %d block(s) loaded, %d non-numeric tag row(s) skipped", len(regions), nSkipped)
	return NewIndex(regions), nil
}

// ReadGenes loads named regions from rows of (name, chromosome, start,
// stop).  Names longer than MaxLabelLen bytes are truncated.
func ReadGenes(r io.Reader) (*Index, error) {
	var regions []Region
	err := util.ScanRows(r, func(row []string, line int) error {
		if err := checkColumns(row, 4, line); err != nil {
			return err
		}
		chr, ok := util.ParseChr(row[1])
		if !ok {
			return errors.Errorf("line %d: chromosome %q is not numeric", line, row[1])
		}
		start, stop, err := parseRange(row[2], row[3], line)
		if err != nil {
			return err
		}
		label := row[0]
		if len(label) > MaxLabelLen {
			label = label[:MaxLabelLen]
		}
		regions = append(regions, Region{Chr: chr, Start: start, Stop: stop, Label: label})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("interval.ReadGenes: %d gene(s) loaded", len(regions))
	return NewIndex(regions), nil
}

// ReadTargets loads unnamed regions from rows of (chromosome, start, stop).
func ReadTargets(r io.Reader) (*Index, error) {
	var regions []Region
	err := util.ScanRows(r, func(row []string, line int) error {
		if err := checkColumns(row, 3, line); err != nil {
			return err
		}
		chr, ok := util.ParseChr(row[0])
		if !ok {
			return errors.Errorf("line %d: chromosome %q is not numeric", line, row[0])
		}
		start, stop, err := parseRange(row[1], row[2], line)
		if err != nil {
			return err
		}
		regions = append(regions, Region{Chr: chr, Start: start, Stop: stop})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("interval.ReadTargets: %d region(s) loaded", len(regions))
	return NewIndex(regions), nil
}

// ReadAlignmentFromPath is a wrapper for ReadAlignment that takes a path
// instead of an io.Reader.
func ReadAlignmentFromPath(ctx context.Context, path string) (*Index, error) {
	return readFromPath(ctx, path, ReadAlignment)
}

// ReadGenesFromPath is a wrapper for ReadGenes that takes a path instead of
// an io.Reader.
func ReadGenesFromPath(ctx context.Context, path string) (*Index, error) {
	return readFromPath(ctx, path, ReadGenes)
}

// ReadTargetsFromPath is a wrapper for ReadTargets that takes a path instead
// of an io.Reader.
func ReadTargetsFromPath(ctx context.Context, path string) (*Index, error) {
	return readFromPath(ctx, path, ReadTargets)
}

func readFromPath(ctx context.Context, path string, read func(io.Reader) (*Index, error)) (x *Index, err error) {
	err = util.WithReader(ctx, path, func(r io.Reader) (err error) {
		x, err = read(r)
		return
	})
	return
}
