package stats

import (
	"testing"

	"github.com/nexuspointwg/corectl/internal/pkg/wgnl"
)

func peer(pub byte, tx, rx uint64) wgnl.Peer {
	var p wgnl.Peer
	p.PublicKey[0] = pub
	p.TxBytes = tx
	p.RxBytes = rx
	return p
}

func newWorker() *Worker {
	return &Worker{prev: make(map[string]counters)}
}

// TestDeltasFirstObservationEmitsNothing verifies that the first sample
// of a key seeds prev and contributes no delta.
func TestDeltasFirstObservationEmitsNothing(t *testing.T) {
	w := newWorker()
	got := w.deltas([]wgnl.Peer{peer(1, 1000, 2000)})
	if len(got) != 0 {
		t.Fatalf("expected no deltas on first observation, got %v", got)
	}
	c := w.prev[string(peer(1, 0, 0).PublicKey[:])]
	if c.tx != 1000 || c.rx != 2000 {
		t.Fatalf("expected prev seeded to (1000,2000), got %+v", c)
	}
}

// TestDeltasMonotoneIncrease verifies that without resets, persisted
// deltas equal the last-sampled totals minus the prior sample.
func TestDeltasMonotoneIncrease(t *testing.T) {
	w := newWorker()
	w.deltas([]wgnl.Peer{peer(1, 1000, 2000)})

	got := w.deltas([]wgnl.Peer{peer(1, 1500, 2400)})
	if len(got) != 1 {
		t.Fatalf("expected one delta, got %d", len(got))
	}
	if got[0].DTx != 500 || got[0].DRx != 400 {
		t.Fatalf("expected delta (500,400), got (%d,%d)", got[0].DTx, got[0].DRx)
	}
}

// TestDeltasCounterReset verifies that a reset is skipped for the cycle
// it's observed in, and the lower value becomes the new baseline; the
// following cycle emits the delta from that new baseline.
func TestDeltasCounterReset(t *testing.T) {
	w := newWorker()
	w.prev[string(peer(1, 0, 0).PublicKey[:])] = counters{tx: 1000, rx: 2000}

	// Cycle 1: kernel counters reset to (500, 1500).
	got := w.deltas([]wgnl.Peer{peer(1, 500, 1500)})
	if len(got) != 0 {
		t.Fatalf("expected no delta emitted on the reset cycle, got %v", got)
	}

	// Cycle 2: counters continue increasing from the new baseline.
	got = w.deltas([]wgnl.Peer{peer(1, 800, 1800)})
	if len(got) != 1 {
		t.Fatalf("expected one delta after the reset baseline, got %d", len(got))
	}
	if got[0].DTx != 300 || got[0].DRx != 300 {
		t.Fatalf("expected delta (300,300), got (%d,%d)", got[0].DTx, got[0].DRx)
	}
}

// TestDeltasZeroDeltaSkipped: an unchanged peer contributes nothing even
// though it has been observed before.
func TestDeltasZeroDeltaSkipped(t *testing.T) {
	w := newWorker()
	w.deltas([]wgnl.Peer{peer(1, 1000, 2000)})

	got := w.deltas([]wgnl.Peer{peer(1, 1000, 2000)})
	if len(got) != 0 {
		t.Fatalf("expected no delta for an unchanged peer, got %v", got)
	}
}

// TestDeltasMultiplePeersIndependent ensures one peer's reset doesn't
// affect another peer's baseline or emitted delta.
func TestDeltasMultiplePeersIndependent(t *testing.T) {
	w := newWorker()
	w.deltas([]wgnl.Peer{peer(1, 1000, 2000), peer(2, 100, 100)})

	got := w.deltas([]wgnl.Peer{peer(1, 50, 60), peer(2, 300, 400)})
	if len(got) != 1 {
		t.Fatalf("expected only peer 2's delta, got %d deltas", len(got))
	}
	if got[0].PublicKey[0] != 2 {
		t.Fatalf("expected delta for peer 2, got peer %d", got[0].PublicKey[0])
	}
	if got[0].DTx != 200 || got[0].DRx != 300 {
		t.Fatalf("expected delta (200,300), got (%d,%d)", got[0].DTx, got[0].DRx)
	}
}
