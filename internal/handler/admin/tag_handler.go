package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	tagService "github.com/BoringLink/yisu-hotel-backend/internal/service/tag"
)

// TagHandler 标签管理处理器
type TagHandler struct {
	tagService *tagService.TagService
}

// NewTagHandler 创建标签管理处理器
func NewTagHandler(tagSvc *tagService.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagSvc,
	}
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags 标签管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body tagService.SaveTagRequest true "标签信息"
// @Success 200 {object} response.Response{data=models.Tag}
// @Router /api/admin/tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req tagService.SaveTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), &req)
	handler.MustSucceed(c, err, tag)
}

// UpdateTag 修改标签
// @Summary 修改标签
// @Tags 标签管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Param request body tagService.SaveTagRequest true "标签信息"
// @Success 200 {object} response.Response{data=models.Tag}
// @Router /api/admin/tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := handler.ParseID(c, "标签")
	if !ok {
		return
	}

	var req tagService.SaveTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), tagID, &req)
	handler.MustSucceed(c, err, tag)
}

// DeleteTag 删除标签
// @Summary 删除标签（连同酒店关联）
// @Tags 标签管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response
// @Router /api/admin/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := handler.ParseID(c, "标签")
	if !ok {
		return
	}

	err := h.tagService.Delete(c.Request.Context(), tagID)
	handler.MustSucceedWithMessage(c, err, "删除成功", nil)
}

// ListTags 获取标签列表
// @Summary 获取标签列表
// @Tags 标签管理
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "名称关键词"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.Tag}
// @Router /api/admin/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	p := handler.BindPagination(c)
	tags, total, err := h.tagService.List(c.Request.Context(), p.Page, p.PageSize, c.Query("keyword"))
	handler.MustSucceedPage(c, err, tags, total, p.Page, p.PageSize)
}

// AttachTag 给酒店打标签
// @Summary 给酒店打标签
// @Tags 标签管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param tag_id path int true "标签ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/tags/{tag_id} [post]
func (h *TagHandler) AttachTag(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}
	tagID, ok := handler.ParseParamID(c, "tag_id", "标签")
	if !ok {
		return
	}

	err := h.tagService.Attach(c.Request.Context(), hotelID, tagID)
	handler.MustSucceedWithMessage(c, err, "已打标", nil)
}

// DetachTag 移除酒店标签
// @Summary 移除酒店标签
// @Tags 标签管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param tag_id path int true "标签ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/tags/{tag_id} [delete]
func (h *TagHandler) DetachTag(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}
	tagID, ok := handler.ParseParamID(c, "tag_id", "标签")
	if !ok {
		return
	}

	err := h.tagService.Detach(c.Request.Context(), hotelID, tagID)
	handler.MustSucceedWithMessage(c, err, "已移除", nil)
}

// RegisterRoutes 注册标签管理路由（需管理员认证）
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	{
		tags.POST("", h.CreateTag)
		tags.GET("", h.ListTags)
		tags.PUT("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}
	rg.POST("/hotels/:id/tags/:tag_id", h.AttachTag)
	rg.DELETE("/hotels/:id/tags/:tag_id", h.DetachTag)
}
