package dto

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required,gt=0" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1" example:"2"`
}

// UpdateCartItemRequest 修改条目数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1" example:"3"`
}
