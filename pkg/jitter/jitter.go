// Package jitter размывает интервалы повторов случайной добавкой,
// чтобы повторы разных воркеров не приходили синхронно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — доля случайной добавки к интервалу (до +50%).
const DefaultJitter = 0.5

// Duration добавляет к d случайную долю в диапазоне [0, factor*d].
func Duration(d time.Duration, factor float64) time.Duration {
	if factor <= 0 || d <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff возвращает интервал перед попыткой attempt (с нуля):
// base удваивается на каждую попытку, ограничивается max и размывается джиттером.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	d := base
	for ; attempt > 0 && d < max; attempt-- {
		d *= 2
	}
	if d > max {
		d = max
	}

	return Duration(d, factor)
}
