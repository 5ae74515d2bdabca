// Package stats periodically samples per-peer WireGuard traffic counters
// and accumulates monotone totals into the store, tolerating kernel-side
// counter resets.
package stats

import (
	"context"
	"time"

	"k8s.io/klog/v2"

	"github.com/nexuspointwg/corectl/internal/pkg/wgnl"
	"github.com/nexuspointwg/corectl/internal/store"
)

// Period is the fixed sampling interval.
const Period = 60 * time.Second

type counters struct {
	tx uint64
	rx uint64
}

// Worker owns its own WireGuard netlink handle, independent of any
// handle the reconciler holds, so sampling never contends on the
// reconciler's lock; only DB writes are shared.
type Worker struct {
	store     store.Factory
	wg        *wgnl.Client
	ifaceName string
	prev      map[string]counters
}

// New builds a Worker bound to its own wgnl.Client.
func New(st store.Factory, wg *wgnl.Client, ifaceName string) *Worker {
	return &Worker{store: st, wg: wg, ifaceName: ifaceName, prev: make(map[string]counters)}
}

// Run samples every Period until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cycle(ctx); err != nil {
				klog.ErrorS(err, "stats worker cycle failed")
			}
		}
	}
}

// cycle samples the interface once and persists any deltas. Each cycle's
// DB transaction is self-contained; cycles never overlap since Run drives
// them serially off one ticker.
func (w *Worker) cycle(ctx context.Context) error {
	iface, err := w.wg.GetInterface(w.ifaceName)
	if err != nil {
		return err
	}

	deltas := w.deltas(iface.Peers)
	if len(deltas) == 0 {
		return nil
	}
	return w.store.Stats().UpdatePeersStats(ctx, deltas)
}

// deltas applies the prev-map/skip-on-decrease rule to one sample of
// peers, updating w.prev in place and returning the non-negative,
// non-zero deltas to persist. Factored out of cycle so the monotonicity
// logic is testable without a kernel netlink handle.
func (w *Worker) deltas(peers []wgnl.Peer) []store.StatDelta {
	deltas := make([]store.StatDelta, 0, len(peers))
	for _, p := range peers {
		key := string(p.PublicKey[:])
		cur := counters{tx: p.TxBytes, rx: p.RxBytes}

		prev, seen := w.prev[key]
		if !seen {
			w.prev[key] = cur
			continue
		}

		if cur.tx < prev.tx || cur.rx < prev.rx {
			klog.V(1).InfoS("stats: counter reset detected, skipping cycle for peer",
				"publicKey", p.PublicKey, "prevTx", prev.tx, "curTx", cur.tx, "prevRx", prev.rx, "curRx", cur.rx)
			w.prev[key] = cur
			continue
		}

		dtx := cur.tx - prev.tx
		drx := cur.rx - prev.rx
		w.prev[key] = cur
		if dtx == 0 && drx == 0 {
			continue
		}

		pub := make([]byte, len(p.PublicKey))
		copy(pub, p.PublicKey[:])
		deltas = append(deltas, store.StatDelta{PublicKey: pub, DTx: dtx, DRx: drx})
	}
	return deltas
}
