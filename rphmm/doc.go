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

// Package rphmm implements a read-partitioning hidden Markov model: given a
// tile of aligned reads represented as per-position emission profiles, it
// phases them into two haplotype groups.
//
// Each hidden state is a bipartition of the reads spanning a reference
// column, packed into a 64-bit word (bit i set means read i is assigned to
// haplotype 1). Columns hold the reads whose span is constant over a
// reference subinterval; merge columns sit between columns and carry the
// bookkeeping needed when reads enter or leave. Forward/backward message
// passing over this column chain, followed by a Viterbi-style traceback,
// yields the most likely partition.
//
// The package performs no I/O. Building ProfileSequence values from raw
// reads is the caller's job; see package readprofile for one such builder.
package rphmm
