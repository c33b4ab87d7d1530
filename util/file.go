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

// Package util holds the file plumbing shared by the loaders and commands:
// opening (possibly compressed) inputs, tab-separated row scanning, and
// output creation.
package util

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// Input is a readable file, decompressed on the fly when its name marks it
// as gzip (this covers bgzipped VCFs as well).
type Input struct {
	in file.File
	gz *gzip.Reader
	r  io.Reader
}

// Open opens path for reading.
func Open(ctx context.Context, path string) (*Input, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	input := &Input{in: in, r: in.Reader(ctx)}
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if input.gz, err = gzip.NewReader(input.r); err != nil {
			_ = in.Close(ctx)
			return nil, errors.E(err, "gzip header", path)
		}
		input.r = input.gz
	}
	return input, nil
}

// Reader returns the (decompressed) contents.
func (i *Input) Reader() io.Reader {
	return i.r
}

// Close releases the underlying file.
func (i *Input) Close(ctx context.Context) (err error) {
	if i.gz != nil {
		err = i.gz.Close()
	}
	if cerr := i.in.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	return
}

// WithReader opens path, passes its contents to fn, and closes it.  Errors
// from fn are annotated with path.
func WithReader(ctx context.Context, path string, fn func(io.Reader) error) (err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = errors.E(cerr, "close", path)
		}
	}()
	if err = fn(in.Reader()); err != nil {
		err = errors.E(err, path)
	}
	return
}

// Output is a writable destination: stdout, or a file created through
// grailbio/base/file and gzip-compressed when its name ends in ".gz".
type Output struct {
	out file.File
	gz  *gzip.Writer
	w   io.Writer
}

// Create opens path for writing.  An empty path or "-" selects stdout.
func Create(ctx context.Context, path string) (*Output, error) {
	if path == "" || path == "-" {
		return &Output{w: os.Stdout}, nil
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	o := &Output{out: out, w: out.Writer(ctx)}
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		o.gz = gzip.NewWriter(o.w)
		o.w = o.gz
	}
	return o, nil
}

// Writer returns the destination to write to.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Close flushes any compression state and closes the file.  Closing a
// stdout Output is a no-op.
func (o *Output) Close(ctx context.Context) (err error) {
	if o.gz != nil {
		err = o.gz.Close()
	}
	if o.out == nil {
		return
	}
	if cerr := o.out.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	return
}
