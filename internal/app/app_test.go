//go:build ebiten

package app

import (
	"testing"

	"lifeworld/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestAlgorithmKeysAreOrdered(t *testing.T) {
	want := []string{core.TagNormal, core.TagCoEx, core.TagMove}
	if len(algorithmKeys) != len(want) {
		t.Fatalf("got %d algorithm keys, want %d", len(algorithmKeys), len(want))
	}
	seen := map[ebiten.Key]bool{}
	for i, ak := range algorithmKeys {
		if ak.tag != want[i] {
			t.Fatalf("key %d selects %q, want %q", i, ak.tag, want[i])
		}
		if seen[ak.key] {
			t.Fatalf("key %v bound twice", ak.key)
		}
		seen[ak.key] = true
	}
}
