package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// RoundDiv 整数除法并四舍五入（.5 进位），除数为 0 时返回 0
func RoundDiv(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	if numerator < 0 {
		return -RoundDiv(-numerator, denominator)
	}
	return (2*numerator + denominator) / (2 * denominator)
}
