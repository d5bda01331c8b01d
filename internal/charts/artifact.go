package charts

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

// artifactWriter names chart files `<kind>_chart_<timestamp>.png`. The
// timestamp has second precision; a sequence suffix keeps names unique
// when two artifacts of one kind land in the same second.
type artifactWriter struct {
	dir string

	mu   sync.Mutex
	last map[string]string // kind -> last timestamp used
	seq  map[string]int
}

func newArtifactWriter(dir string) *artifactWriter {
	return &artifactWriter{
		dir:  dir,
		last: make(map[string]string),
		seq:  make(map[string]int),
	}
}

func (w *artifactWriter) path(kind string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := time.Now().Format("20060102_150405")
	if w.last[kind] == ts {
		w.seq[kind]++
		return filepath.Join(w.dir, fmt.Sprintf("%s_chart_%s_%d.png", kind, ts, w.seq[kind]))
	}
	w.last[kind] = ts
	w.seq[kind] = 0
	return filepath.Join(w.dir, fmt.Sprintf("%s_chart_%s.png", kind, ts))
}
