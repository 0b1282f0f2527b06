package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// AuthHandler 认证HTTP处理器
type AuthHandler struct {
	registerUseCase    *appuser.RegisterUseCase
	loginUseCase       *appuser.LoginUseCase
	logoutUseCase      *appuser.LogoutUseCase
	currentUserUseCase *appuser.CurrentUserUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	currentUserUseCase *appuser.CurrentUserUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:    registerUseCase,
		loginUseCase:       loginUseCase,
		logoutUseCase:      logoutUseCase,
		currentUserUseCase: currentUserUseCase,
	}
}

// Register 顾客注册
// @Summary      用户注册
// @Description  所有字段必填;用户名至少3位,密码至少6位;用户名和邮箱不能重复
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} dto.AuthResponse
// @Failure      400 {object} response.ErrorBody "参数错误或用户名/邮箱已存在"
// @Failure      429 {object} response.ErrorBody "请求过于频繁"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	u, ok := h.register(c, user.RoleCustomer)
	if !ok {
		return
	}

	response.Created(c, dto.AuthResponse{
		Success: true,
		User:    dto.NewUserResponse(u),
		Message: "Registration successful! Welcome to Bookstore!",
	})
}

// AddStaff 添加店员
// @Summary      添加店员
// @Description  与注册相同的校验,角色为staff
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegisterRequest true "店员信息"
// @Success      201 {object} dto.AuthResponse
// @Failure      400 {object} response.ErrorBody "参数错误或用户名/邮箱已存在"
// @Router       /api/auth/add-staff [post]
func (h *AuthHandler) AddStaff(c *gin.Context) {
	u, ok := h.register(c, user.RoleStaff)
	if !ok {
		return
	}

	response.Created(c, dto.AuthResponse{
		Success: true,
		User:    dto.NewUserResponse(u),
		Message: fmt.Sprintf("Staff member \"%s\" has been added successfully!", u.FullName),
	})
}

func (h *AuthHandler) register(c *gin.Context, role user.Role) (*user.User, bool) {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return nil, false
	}

	u, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return u, true
}

// Login 用户登录
// @Summary      用户登录
// @Description  成功后返回用户信息和JWT访问令牌
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} dto.AuthResponse
// @Failure      400 {object} response.ErrorBody "缺少用户名或密码"
// @Failure      401 {object} response.ErrorBody "用户名或密码错误"
// @Failure      429 {object} response.ErrorBody "请求过于频繁"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	expiresAt := result.ExpiresAt
	response.OK(c, dto.AuthResponse{
		Success:   true,
		User:      dto.NewUserResponse(result.User),
		Message:   fmt.Sprintf("Welcome, %s!", result.User.FullName),
		Token:     result.Token,
		ExpiresAt: &expiresAt,
	})
}

// Logout 用户登出
// @Summary      用户登出
// @Description  携带Token时吊销该Token;不带Token也返回成功
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.ResultBody
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.ResultBody{Success: true, Message: "Logged out successfully"})
}

// Me 当前登录用户
// @Summary      当前用户
// @Description  带有效Token时返回用户信息,否则提示使用登录接口
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserResponse
// @Failure      401 {object} response.ErrorBody "Token无效、过期或已吊销"
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.currentUserUseCase.Execute(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if u == nil {
		response.Message(c, "Use login endpoint to authenticate")
		return
	}

	response.OK(c, dto.NewUserResponse(u))
}
