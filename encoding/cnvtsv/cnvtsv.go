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

// Package cnvtsv reads and writes the tab-separated CNV call tables used by
// the evaluation pipeline.  Input tables must carry a header row; required
// columns may appear in any order and extra columns are ignored.  Paths may
// point at gzipped files, and any path scheme supported by base/file works.
package cnvtsv

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/cnv"
	"github.com/grailbio/cnv/eval"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// RequiredColumns lists the header columns every call table must provide.
// ID is the sample ID; Start/Stop are 1-based inclusive coordinates.
var RequiredColumns = []string{"ID", "Chr", "Start", "Stop", "Length", "NumSNPs", "CN"}

// LabelColumn is the region-label column.  Ground-truth tables must have it;
// predicted tables may omit it.
const LabelColumn = "CNVID"

// ReadOpts controls call-table parsing.
type ReadOpts struct {
	// RequireLabel makes the CNVID column mandatory.  Set it when reading
	// ground-truth tables, whose regions must all be labeled.
	RequireLabel bool
}

// callRow mirrors one data line of a labeled call table.
type callRow struct {
	SampleID string `tsv:"ID"`
	Chr      string `tsv:"Chr"`
	Start    int64  `tsv:"Start"`
	Stop     int64  `tsv:"Stop"`
	Length   int64  `tsv:"Length"`
	NumSNPs  int64  `tsv:"NumSNPs"`
	CN       int64  `tsv:"CN"`
	CNVID    string `tsv:"CNVID"`
}

// unlabeledCallRow is callRow for tables without a CNVID column.
type unlabeledCallRow struct {
	SampleID string `tsv:"ID"`
	Chr      string `tsv:"Chr"`
	Start    int64  `tsv:"Start"`
	Stop     int64  `tsv:"Stop"`
	Length   int64  `tsv:"Length"`
	NumSNPs  int64  `tsv:"NumSNPs"`
	CN       int64  `tsv:"CN"`
}

func (row *callRow) toCall(name string, lineIdx int) (cnv.Call, error) {
	if row.Start <= 0 || row.Stop < row.Start || row.Stop >= cnv.PosTypeMax {
		return cnv.Call{}, errors.Errorf("%s: line %d: invalid coordinate pair [%d, %d]", name, lineIdx, row.Start, row.Stop)
	}
	if row.Length <= 0 || row.Length >= cnv.PosTypeMax {
		return cnv.Call{}, errors.Errorf("%s: line %d: invalid region length %d", name, lineIdx, row.Length)
	}
	if row.NumSNPs <= 0 {
		return cnv.Call{}, errors.Errorf("%s: line %d: invalid SNP count %d", name, lineIdx, row.NumSNPs)
	}
	if row.CN < 0 {
		return cnv.Call{}, errors.Errorf("%s: line %d: negative copy number %d", name, lineIdx, row.CN)
	}
	return cnv.Call{
		SampleID: row.SampleID,
		Chr:      row.Chr,
		Start:    cnv.PosType(row.Start),
		Stop:     cnv.PosType(row.Stop),
		Length:   cnv.PosType(row.Length),
		NumSNPs:  int(row.NumSNPs),
		CN:       int(row.CN),
		CNVID:    row.CNVID,
	}, nil
}

// ReadCalls reads a CNV call table from path.  Gzipped input is detected
// from the path suffix and decompressed transparently.
func ReadCalls(ctx context.Context, path string, opts ReadOpts) (calls []cnv.Call, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return ReadCallsFrom(reader, path, opts)
}

// ReadCallsFrom reads a CNV call table from r.  name is used in error
// messages only.  The header is validated before any data row is parsed, so
// a table with a missing required column fails without partial results.
func ReadCallsFrom(r io.Reader, name string, opts ReadOpts) ([]cnv.Call, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "%s: reading header", name)
	}
	if strings.TrimSpace(header) == "" {
		return nil, errors.Errorf("%s: empty call table (no header row)", name)
	}
	cols := make(map[string]bool)
	for _, c := range strings.Split(strings.TrimRight(header, "\r\n"), "\t") {
		cols[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !cols[c] {
			missing = append(missing, c)
		}
	}
	if opts.RequireLabel && !cols[LabelColumn] {
		missing = append(missing, LabelColumn)
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("%s: call table is missing required column(s): %s", name, strings.Join(missing, ", "))
	}
	hasLabel := cols[LabelColumn]

	tr := tsv.NewReader(io.MultiReader(strings.NewReader(header), br))
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	readRow := func(row *callRow) error {
		if hasLabel {
			return tr.Read(row)
		}
		var u unlabeledCallRow
		if err := tr.Read(&u); err != nil {
			return err
		}
		*row = callRow{
			SampleID: u.SampleID,
			Chr:      u.Chr,
			Start:    u.Start,
			Stop:     u.Stop,
			Length:   u.Length,
			NumSNPs:  u.NumSNPs,
			CN:       u.CN,
		}
		return nil
	}

	var calls []cnv.Call
	for lineIdx := 2; ; lineIdx++ {
		var row callRow
		if err := readRow(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "%s: line %d", name, lineIdx)
		}
		c, err := row.toCall(name, lineIdx)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, nil
}

// ResultHeader is the output header: every ground-truth column followed by
// the appended classification columns.
const ResultHeader = "ID\tChr\tStart\tStop\tLength\tNumSNPs\tCN\t" +
	"CNV.Present\tCNV.Predicted\tOverlap.Length\tOverlap.SNP\t" +
	"CNVID.Mock\tCNVID.Pred\tCN.Pred\tNumCNVs\tPredictedByOverlap"

func writeBool(w *tsv.Writer, b bool) {
	if b {
		w.WriteInt64(1)
	} else {
		w.WriteInt64(0)
	}
}

// WriteResultsTo writes the classification table to w, one row per
// ground-truth call, in input order.  Boolean columns are rendered as 0/1.
func WriteResultsTo(w io.Writer, results []eval.Result) error {
	tw := tsv.NewWriter(w)
	tw.WriteString(ResultHeader)
	tw.EndLine()
	for i := range results {
		r := &results[i]
		tw.WriteString(r.SampleID)
		tw.WriteString(r.Chr)
		tw.WriteInt64(int64(r.Start))
		tw.WriteInt64(int64(r.Stop))
		tw.WriteInt64(int64(r.Length))
		tw.WriteInt64(int64(r.NumSNPs))
		tw.WriteInt64(int64(r.CN))
		writeBool(tw, r.Present)
		writeBool(tw, r.Predicted)
		tw.WriteFloat64(r.OverlapPctLen, 'g', -1)
		tw.WriteFloat64(r.OverlapPctSNP, 'g', -1)
		tw.WriteString(r.MockID)
		tw.WriteString(r.PredID)
		tw.WriteInt64(int64(r.PredCN))
		tw.WriteInt64(int64(r.NumCNVs))
		writeBool(tw, r.PredictedByOverlap)
		tw.EndLine()
	}
	return tw.Flush()
}

// WriteResults writes the classification table to path.  A .gz suffix
// selects bgzip compression; parallelism bounds the compressor's worker
// count (0 = single-threaded).
func WriteResults(ctx context.Context, path string, results []eval.Result, parallelism int) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := io.Writer(out.Writer(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if parallelism <= 0 {
			parallelism = 1
		}
		bgzfWriter := bgzf.NewWriter(w, parallelism)
		defer func() {
			if e := bgzfWriter.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = bgzfWriter
	}
	return WriteResultsTo(w, results)
}
