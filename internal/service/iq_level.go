package service

import "gridiron_backend/internal/model"

type iqTier struct {
	level    model.IQLevel
	minScore int
}

// 从低到高，下界包含
var iqTiers = []iqTier{
	{model.IQLevelRookie, 0},
	{model.IQLevelStarter, 40},
	{model.IQLevelVarsity, 60},
	{model.IQLevelAllState, 75},
	{model.IQLevelAllAmerican, 90},
}

// CalculateIQLevel 分数到等级的阶梯映射。超出 [0,100] 的输入先截断。
func CalculateIQLevel(score int) model.IQLevel {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	level := iqTiers[0].level
	for _, t := range iqTiers {
		if score >= t.minScore {
			level = t.level
		}
	}
	return level
}

// TierRank 等级序号，未知等级返回 -1
func TierRank(level model.IQLevel) int {
	for i, t := range iqTiers {
		if t.level == level {
			return i
		}
	}
	return -1
}

func IQLevels() []model.IQLevel {
	levels := make([]model.IQLevel, len(iqTiers))
	for i, t := range iqTiers {
		levels[i] = t.level
	}
	return levels
}
