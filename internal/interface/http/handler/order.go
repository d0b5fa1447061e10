package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/onlinebookstore/internal/application/order"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeUseCase        *apporder.PlaceOrderUseCase
	listUseCase         *apporder.ListOrdersUseCase
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase
	itemsUseCase        *apporder.GetOrderItemsUseCase
	itemUseCase         *apporder.GetOrderItemUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeUseCase *apporder.PlaceOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase,
	itemsUseCase *apporder.GetOrderItemsUseCase,
	itemUseCase *apporder.GetOrderItemUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeUseCase:        placeUseCase,
		listUseCase:         listUseCase,
		updateStatusUseCase: updateStatusUseCase,
		itemsUseCase:        itemsUseCase,
		itemUseCase:         itemUseCase,
	}
}

// PlaceOrder 购物车下单
// @Summary      下单
// @Description  把当前购物车转成订单,价格取下单时的图书价格,成功后清空购物车
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "收货地址"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "购物车为空"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.placeUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          middleware.MustGetUserID(c),
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOrders 我的订单
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderResponse}}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.listUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Description  PENDING→PROCESSING→SHIPPED→DELIVERED→COMPLETED,PENDING/PROCESSING可取消
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "未知状态"
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "状态流转不合法"
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListItems 订单明细
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]apporder.OrderItemResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/items [get]
func (h *OrderHandler) ListItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.itemsUseCase.Execute(c.Request.Context(), viewer(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem 单条订单明细
// @Summary      单条订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "订单ID"
// @Param        itemId path int true "明细ID"
// @Success      200 {object} response.Response{data=apporder.OrderItemResponse}
// @Failure      404 {object} response.Response "订单或明细不存在"
// @Router       /orders/{id}/items/{itemId} [get]
func (h *OrderHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	result, err := h.itemUseCase.Execute(c.Request.Context(), viewer(c), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func viewer(c *gin.Context) apporder.Viewer {
	return apporder.Viewer{
		UserID:  middleware.MustGetUserID(c),
		IsAdmin: middleware.HasRole(c, string(user.RoleAdmin)),
	}
}
