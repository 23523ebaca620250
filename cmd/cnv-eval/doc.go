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

/*
Given a mock (ground-truth) CNV table and the CNV calls produced by a
detection algorithm on the same samples, cnv-eval reports, for every mock
region, whether the algorithm found it, how much of it was covered, and the
matched call's copy-number state.  Zero-overlap mock regions come out as
missed calls, and when several predictions overlap one mock region only the
longest (first on ties) is matched.

Both inputs are TSVs with a header row carrying at least the columns
ID, Chr, Start, Stop, Length, NumSNPs and CN; the mock table additionally
needs a CNVID label column.  Gzipped inputs are decompressed transparently,
and a .gz output suffix selects bgzip compression.

Sample usage:
cnv-eval \
    --out comparison.tsv \
    --summary \
    mock_cnv.tsv \
    penncnv_calls.tsv
*/
package main
