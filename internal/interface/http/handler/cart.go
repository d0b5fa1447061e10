package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/onlinebookstore/internal/application/cart"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// CartHandler 购物车HTTP处理器,所有接口都作用于当前登录用户的购物车
type CartHandler struct {
	getUseCase    *appcart.GetCartUseCase
	addUseCase    *appcart.AddItemUseCase
	updateUseCase *appcart.UpdateItemUseCase
	removeUseCase *appcart.RemoveItemUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	getUseCase *appcart.GetCartUseCase,
	addUseCase *appcart.AddItemUseCase,
	updateUseCase *appcart.UpdateItemUseCase,
	removeUseCase *appcart.RemoveItemUseCase,
) *CartHandler {
	return &CartHandler{
		getUseCase:    getUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		removeUseCase: removeUseCase,
	}
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  图书已在购物车中时数量累加
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书和数量"
// @Success      201 {object} response.Response{data=appcart.CartResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.addUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:   middleware.MustGetUserID(c),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateItem 修改条目数量
// @Summary      修改购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appcart.UpdateItemRequest{
		UserID:   middleware.MustGetUserID(c),
		ItemID:   id,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem 删除条目
// @Summary      删除购物车条目
// @Tags         购物车
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      204
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.removeUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
