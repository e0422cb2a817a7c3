package model

// IQLevel Football IQ 等级
type IQLevel string

const (
	IQLevelRookie      IQLevel = "rookie"
	IQLevelStarter     IQLevel = "starter"
	IQLevelVarsity     IQLevel = "varsity"
	IQLevelAllState    IQLevel = "all_state"
	IQLevelAllAmerican IQLevel = "all_american"
)
