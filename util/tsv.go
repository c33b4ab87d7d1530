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

package util

import (
	"io"

	"github.com/grailbio/base/tsv"
)

// TSVScanner splits a tab-separated stream into rows.  Rows may have any
// number of columns; blank lines are skipped and CRLF line endings are
// stripped.  Like bufio.Scanner, Scan returns false at the end of input or
// on the first error, which Err then reports.
type TSVScanner struct {
	r    *tsv.Reader
	row  []string
	line int
	err  error
}

// NewTSVScanner creates a TSVScanner reading from r.
func NewTSVScanner(r io.Reader) *TSVScanner {
	tr := tsv.NewReader(r)
	tr.Comma = '\t'
	tr.FieldsPerRecord = -1
	tr.LazyQuotes = true
	tr.ReuseRecord = true
	return &TSVScanner{r: tr}
}

// Scan advances to the next row.
func (s *TSVScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	// The embedded csv.Reader yields raw columns; tsv.Reader.Read would
	// decode into a struct with a fixed column count.
	row, err := s.r.Reader.Read()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		s.row = nil
		return false
	}
	s.row = row
	s.line++
	return true
}

// Row returns the columns of the current row.  The slice is reused by the
// next call to Scan; the strings are not.
func (s *TSVScanner) Row() []string {
	return s.row
}

// Line returns the 1-based index of the current row among nonblank rows.
func (s *TSVScanner) Line() int {
	return s.line
}

// Err returns the first non-EOF error encountered.
func (s *TSVScanner) Err() error {
	return s.err
}

// ScanRows calls fn on each row of r.  Scanning stops at the first error
// returned by fn.
func ScanRows(r io.Reader, fn func(row []string, line int) error) error {
	s := NewTSVScanner(r)
	for s.Scan() {
		if err := fn(s.Row(), s.Line()); err != nil {
			return err
		}
	}
	return s.Err()
}
