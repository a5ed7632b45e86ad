/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reasontrie

import (
	"math/rand"
	"strings"
	"testing"

	"dirpx.dev/contracts/reason"
)

// genSegment returns a valid segment: [a-z][a-z0-9_]*
func genSegment(rng *rand.Rand, min, max int) string {
	n := min + rng.Intn(max-min+1)
	var b strings.Builder
	b.WriteByte(byte('a' + rng.Intn(26)))
	for i := 1; i < n; i++ {
		switch rng.Intn(3) {
		case 0:
			b.WriteByte(byte('a' + rng.Intn(26)))
		case 1:
			b.WriteByte(byte('0' + rng.Intn(10)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// makePattern builds a pattern of depth segments with a "*" every k
// segments (none when k is 0).
func makePattern(rng *rand.Rand, depth, k int) string {
	segs := make([]string, depth)
	for i := range segs {
		if k > 0 && (i+1)%k == 0 {
			segs[i] = "*"
			continue
		}
		segs[i] = genSegment(rng, 3, 8)
	}
	return strings.Join(segs, ".")
}

// buildTrie inserts n patterns and returns reasons one segment deeper than
// each, so every lookup resolves by longest prefix. Depth is capped by the
// four-segment reason grammar.
func buildTrie(b *testing.B, n, depth, k int) (*Trie[int], []reason.Reason) {
	rng := rand.New(rand.NewSource(1))
	tr := New[int]()
	reasons := make([]reason.Reason, 0, n)
	for i := 0; i < n; i++ {
		p := makePattern(rng, depth, k)
		if err := tr.Insert(p, i); err != nil {
			b.Fatalf("insert %q: %v", p, err)
		}
		parts := strings.Split(p, ".")
		for j := range parts {
			if parts[j] == "*" {
				parts[j] = genSegment(rng, 3, 8)
			}
		}
		reasons = append(reasons, reason.Reason(strings.Join(append(parts, genSegment(rng, 3, 8)), ".")))
	}
	return tr, reasons
}

func BenchmarkInsert_N128_Depth3(b *testing.B)  { benchInsert(b, 128, 3, 0) }
func BenchmarkInsert_N1024_Depth3(b *testing.B) { benchInsert(b, 1024, 3, 0) }

func benchInsert(b *testing.B, n, depth, k int) {
	rng := rand.New(rand.NewSource(2))
	patterns := make([]string, n)
	for i := range patterns {
		patterns[i] = makePattern(rng, depth, k)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New[int]()
		for j, p := range patterns {
			if err := tr.Insert(p, j); err != nil {
				b.Fatalf("insert: %v", err)
			}
		}
	}
}

func BenchmarkLookup_N128_Depth3(b *testing.B)                 { benchLookup(b, 128, 3, 0) }
func BenchmarkLookup_N1024_Depth3(b *testing.B)                { benchLookup(b, 1024, 3, 0) }
func BenchmarkLookup_N1024_Depth3_WildcardEvery2(b *testing.B) { benchLookup(b, 1024, 3, 2) }

func benchLookup(b *testing.B, n, depth, k int) {
	tr, reasons := buildTrie(b, n, depth, k)
	b.ReportAllocs()
	b.ResetTimer()
	hits := 0
	for i := 0; i < b.N; i++ {
		if _, _, ok := tr.Lookup(reasons[i%len(reasons)]); ok {
			hits++
		}
	}
	if hits == 0 {
		b.Fatal("no lookup matched")
	}
}

func BenchmarkLookupParallel_N1024_Depth3(b *testing.B) {
	tr, reasons := buildTrie(b, 1024, 3, 0)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _, _ = tr.Lookup(reasons[i%len(reasons)])
			i++
		}
	})
}
