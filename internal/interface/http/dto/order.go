package dto

// PlaceOrderRequest 购物车下单
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,notblank,max=255" example:"北京市海淀区中关村大街1号"`
}

// UpdateOrderStatusRequest 修改订单状态(管理员)
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,notblank" example:"PROCESSING"`
}
