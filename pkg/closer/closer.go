// Package closer собирает функции освобождения ресурсов и закрывает их
// в обратном порядке регистрации при остановке приложения.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Func — функция освобождения одного ресурса.
type Func func(ctx context.Context) error

// Closer хранит зарегистрированные функции закрытия. Close выполняется
// не более одного раза; ресурсы закрываются в порядке LIFO.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	funcs         []Func
	forcedTimeout time.Duration
}

// NewCloser создаёт Closer. forcedTimeout ограничивает принудительное
// закрытие ресурсов, не успевших закрыться до отмены контекста Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = 2 * time.Second
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия ресурса.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	c.funcs = append(c.funcs, f)
	c.mu.Unlock()
}

// Close закрывает ресурсы в обратном порядке регистрации. Если ctx
// отменяется раньше, оставшиеся ресурсы закрываются параллельно с
// собственным таймаутом, а итоговая ошибка перечисляет все сбои.
func (c *Closer) Close(ctx context.Context) error {
	var err error

	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var failures []string

		remaining := -1
		for i := len(funcs) - 1; i >= 0; i-- {
			done := make(chan error, 1)
			go func(f Func) { done <- f(ctx) }(funcs[i])

			select {
			case closeErr := <-done:
				if closeErr != nil {
					failures = append(failures, closeErr.Error())
				}
			case <-ctx.Done():
				remaining = i
			}

			if remaining >= 0 {
				break
			}
		}

		if remaining >= 0 {
			// Контекст истёк: дожимаем оставшиеся ресурсы параллельно
			failures = append(failures, c.forceClose(funcs[:remaining+1])...)
			err = fmt.Errorf("shutdown interrupted, %d of %d resources forced: %s",
				remaining+1, len(funcs), strings.Join(failures, "; "))
			return
		}

		if len(failures) > 0 {
			err = fmt.Errorf("shutdown finished with errors: %s", strings.Join(failures, "; "))
		}
	})

	return err
}

func (c *Closer) forceClose(funcs []Func) []string {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []string
	)

	for _, f := range funcs {
		wg.Add(1)
		go func(f Func) {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				failures = append(failures, "forced: "+err.Error())
				mu.Unlock()
			}
		}(f)
	}

	wg.Wait()
	return failures
}
