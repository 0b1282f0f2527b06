package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// UserHandler 用户账户HTTP处理器（资料、支付方式）
type UserHandler struct {
	listUsersUseCase      *appuser.ListUsersUseCase
	getProfileUseCase     *appuser.GetProfileUseCase
	updateProfileUseCase  *appuser.UpdateProfileUseCase
	paymentMethodsUseCase *appuser.PaymentMethodsUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	listUsersUseCase *appuser.ListUsersUseCase,
	getProfileUseCase *appuser.GetProfileUseCase,
	updateProfileUseCase *appuser.UpdateProfileUseCase,
	paymentMethodsUseCase *appuser.PaymentMethodsUseCase,
) *UserHandler {
	return &UserHandler{
		listUsersUseCase:      listUsersUseCase,
		getProfileUseCase:     getProfileUseCase,
		updateProfileUseCase:  updateProfileUseCase,
		paymentMethodsUseCase: paymentMethodsUseCase,
	}
}

// ListUsers 用户列表
// @Summary      用户列表
// @Description  返回全部用户(不含密码)
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  dto.UserResponse
// @Failure      500 {object} response.ErrorBody "读取失败"
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUsersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewUserList(users))
}

// GetProfile 用户资料
// @Summary      用户资料
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} dto.UserResponse
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/users/{id}/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.getProfileUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewUserResponse(u))
}

// UpdateProfile 更新用户资料
// @Summary      更新用户资料
// @Description  空字段保留原值;address中出现的字段逐个覆盖
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "用户ID"
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} dto.ProfileUpdatedResponse
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/users/{id}/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.updateProfileUseCase.Execute(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ProfileUpdatedResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    dto.NewUserResponse(u),
	})
}

// ListPaymentMethods 支付方式列表
// @Summary      支付方式列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} dto.PaymentMethodsResponse
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/users/{id}/payment-methods [get]
func (h *UserHandler) ListPaymentMethods(c *gin.Context) {
	userID := c.Param("id")
	methods, err := h.paymentMethodsUseCase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PaymentMethodsResponse{
		UserID:         userID,
		PaymentMethods: dto.NewPaymentMethodList(methods),
	})
}

// AddPaymentMethod 新增支付方式
// @Summary      新增支付方式
// @Description  isDefault为true时取消其他支付方式的默认标记
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "用户ID"
// @Param        request body dto.PaymentMethodRequest true "支付方式"
// @Success      200 {object} dto.PaymentMethodSavedResponse
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/users/{id}/payment-methods [post]
func (h *UserHandler) AddPaymentMethod(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	pm, err := h.paymentMethodsUseCase.Add(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PaymentMethodSavedResponse{
		Success:       true,
		Message:       "Payment method saved successfully",
		PaymentMethod: dto.NewPaymentMethodResponse(*pm),
	})
}

// DeletePaymentMethod 删除支付方式
// @Summary      删除支付方式
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "用户ID"
// @Param        pmId path string true "支付方式ID"
// @Success      200 {object} response.ResultBody
// @Failure      404 {object} response.ErrorBody "用户或支付方式不存在"
// @Router       /api/users/{id}/payment-methods/{pmId} [delete]
func (h *UserHandler) DeletePaymentMethod(c *gin.Context) {
	if err := h.paymentMethodsUseCase.Delete(c.Request.Context(), c.Param("id"), c.Param("pmId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.ResultBody{Success: true, Message: "Payment method deleted successfully"})
}
