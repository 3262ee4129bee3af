package handler

import (
	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/response"
	"AlumniHub/internal/pkg/util"
	"AlumniHub/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalSvc service.GoalService
}

func NewGoalHandler(goalSvc service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalSvc: goalSvc,
	}
}

// UpsertGoal 创建或更新捐赠目标
func (s *GoalHandler) UpsertGoal(c *gin.Context) {
	var req dto.GoalUpsertDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	goal, err := s.goalSvc.UpsertGoal(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, goal)
}

// ActivateGoal 激活目标，同类型下互斥
func (s *GoalHandler) ActivateGoal(c *gin.Context) {
	goalID := c.Param("goal_id")
	if goalID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.goalSvc.SetActive(c.Request.Context(), goalID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeactivateGoal 停用目标
func (s *GoalHandler) DeactivateGoal(c *gin.Context) {
	goalID := c.Param("goal_id")
	if goalID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.goalSvc.SetInactive(c.Request.Context(), goalID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetGoal 获取目标详情
func (s *GoalHandler) GetGoal(c *gin.Context) {
	goalID := c.Param("goal_id")
	if goalID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	goal, err := s.goalSvc.GetGoal(c.Request.Context(), goalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, goal)
}

// GetGoalList 获取全部目标
func (s *GoalHandler) GetGoalList(c *gin.Context) {
	goals, err := s.goalSvc.GetGoalList(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, goals)
}
