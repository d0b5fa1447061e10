package dto

// RegisterRequest 注册请求
// repeat_password必须与password一致;密码强度(字母+数字)在领域层校验
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=100" example:"reader@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
	RepeatPassword  string `json:"repeat_password" binding:"required,eqfield=Password" example:"secret123"`
	FirstName       string `json:"first_name" binding:"required,notblank,max=50" example:"Ada"`
	LastName        string `json:"last_name" binding:"required,notblank,max=50" example:"Lovelace"`
	ShippingAddress string `json:"shipping_address" binding:"required,notblank,max=255" example:"London"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest 刷新Access Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
