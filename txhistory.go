package main

import (
	"sync"
	"time"
)

// How long sent packets are remembered for the history dump and the status
// bar packet rate.
const txHistoryLength = 10 * time.Second

type txHistoryEntry struct {
	what   string
	data   []byte
	sentAt time.Time
}

// txHistory is read by the status bar goroutine while the session writes it,
// so unlike the session itself it carries a lock.
type txHistory struct {
	mutex   sync.Mutex
	entries []txHistoryEntry
	now     func() time.Time
}

func newTxHistory() *txHistory {
	return &txHistory{now: time.Now}
}

func (h *txHistory) add(what string, p []byte) {
	d := make([]byte, len(p))
	copy(d, p)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.entries = append(h.entries, txHistoryEntry{
		what:   what,
		data:   d,
		sentAt: h.now(),
	})
	h.purgeOldEntries()
}

func (h *txHistory) purgeOldEntries() {
	for len(h.entries) > 0 && h.now().Sub(h.entries[0].sentAt) > txHistoryLength {
		h.entries = h.entries[1:]
	}
}

// count returns the number of packets sent within txHistoryLength.
func (h *txHistory) count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.purgeOldEntries()
	return len(h.entries)
}

// last returns copies of up to n of the newest entries, oldest first.
func (h *txHistory) last(n int) (e []txHistoryEntry) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.purgeOldEntries()

	start := len(h.entries) - n
	if start < 0 {
		start = 0
	}
	for _, entry := range h.entries[start:] {
		d := make([]byte, len(entry.data))
		copy(d, entry.data)
		entry.data = d
		e = append(e, entry)
	}
	return e
}
