package dto

// GoalUpsertDTO 创建/更新捐赠目标请求
// 月度目标必须带 month，年度目标不允许带
type GoalUpsertDTO struct {
	GoalType    string `json:"goalType" validate:"required,oneof=monthly yearly"`
	Year        int    `json:"year" validate:"required,min=2000,max=2200"`
	Month       *int   `json:"month" validate:"omitempty,min=1,max=12"`
	Amount      int64  `json:"amount" validate:"required,min=1"`
	StartActive bool   `json:"startActive"`
}

type GoalDTO struct {
	ID       string `json:"id"`
	GoalType string `json:"goalType"`
	Year     int    `json:"year"`
	Month    *int   `json:"month,omitempty"`
	Amount   int64  `json:"amount"`
	IsActive bool   `json:"isActive"`
}
