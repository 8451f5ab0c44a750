package utils

import (
	"cmp"
	"math/rand/v2"

	"github.com/lithammer/shortuuid/v4"
)

// Between 返回 [min, max) 内的随机数；r 为 nil 时使用全局随机源。
func Between(r *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	if r == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + r.Float64()*(max-min)
}

// NewID 生成完整的 shortuuid（22 位 base57），载具、基地、资源共用一个 id 空间。
func NewID() string {
	return shortuuid.New()
}

func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Snap 把坐标对齐到 step 的整数倍（向下取整）。
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return float64(int64(v/step)) * step
}
