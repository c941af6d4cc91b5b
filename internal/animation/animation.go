// animation запускает покадровый цикл с явным владельцем.
//
// Цикл живёт в одной горутине на тикере, вызывает fn с временем,
// прошедшим от старта, и останавливается через Handle.Stop или отмену ctx.
package animation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidFPS — частота кадров вне (0, 120].
var ErrInvalidFPS = errors.New("invalid fps")

// FrameFunc — обработчик одного кадра.
type FrameFunc func(elapsed time.Duration)

// Handle — владелец запущенного цикла.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	frames uint64
	mu     sync.Mutex
}

// Start запускает цикл с частотой fps. Первый кадр выполняется сразу.
func Start(ctx context.Context, fps int, fn FrameFunc) (*Handle, error) {
	if fps <= 0 || fps > 120 {
		return nil, ErrInvalidFPS
	}

	if fn == nil {
		return nil, errors.New("nil frame func")
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go h.run(ctx, time.Second/time.Duration(fps), fn)

	return h, nil
}

func (h *Handle) run(ctx context.Context, interval time.Duration, fn FrameFunc) {
	defer close(h.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	h.frame(fn, 0)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// Stop мог прийти одновременно с тиком.
			if ctx.Err() != nil {
				return
			}
			h.frame(fn, now.Sub(start))
		}
	}
}

func (h *Handle) frame(fn FrameFunc, elapsed time.Duration) {
	fn(elapsed)

	h.mu.Lock()
	h.frames++
	h.mu.Unlock()
}

// Stop останавливает цикл и ждёт завершения текущего кадра.
// Повторные вызовы безопасны. После возврата fn больше не вызывается.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done закрывается, когда цикл завершён.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Frames — количество выполненных кадров.
func (h *Handle) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}
