package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ShouldShowProgress は --progress / --no-progress と TTY 判定から進捗表示の要否を決めます。
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

// Progress はファイル単位の進捗を標準エラーへ 1 行で表示します。複数の goroutine から呼べます。
type Progress struct {
	mu      sync.Mutex
	w       io.Writer
	total   int
	done    int
	start   time.Time
	enabled bool
}

func NewProgress(total int, enabled bool) *Progress {
	return NewProgressTo(os.Stderr, total, enabled)
}

func NewProgressTo(w io.Writer, total int, enabled bool) *Progress {
	return &Progress{w: w, total: total, start: time.Now(), enabled: enabled}
}

// Advance は完了数を 1 つ進めて表示を更新します。
func (p *Progress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.render()
}

func (p *Progress) render() {
	if !p.enabled {
		return
	}
	elapsed := time.Since(p.start)
	eta := "-"
	if p.done > 0 && p.done <= p.total {
		remain := time.Duration(float64(elapsed) * float64(p.total-p.done) / float64(p.done))
		eta = fmt.Sprintf("%02d:%02d:%02d", int(remain.Hours()), int(remain.Minutes())%60, int(remain.Seconds())%60)
	}
	// clear line and print
	fmt.Fprintf(p.w, "\r\033[K[progress] %d/%d files (%d%%) ETA %s",
		p.done, p.total, percent(p.done, p.total), eta)
}

// Done は進捗行を消去します。
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	fmt.Fprint(p.w, "\r\033[K")
}

func percent(a, b int) int {
	if b <= 0 || a >= b {
		return 100
	}
	return int(float64(a) * 100 / float64(b))
}
