package endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/api"
	"github.com/Aircast-Systems/aircast/internal/http/api/admin/packets"
	"github.com/Aircast-Systems/aircast/internal/model"
	"github.com/Aircast-Systems/aircast/internal/storage"
)

// ContentModule mounts the content library endpoints.
func ContentModule(store db.Store, fileStore storage.Storage) api.Module {
	ctl := &contentManager{store: store, fileStore: fileStore}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/content", ctl.createContent)
		c.POST("/content/upload", ctl.uploadContent)
		c.GET("/content", ctl.listContent)
		c.GET("/content/:id", ctl.getContent)
		c.PUT("/content/:id", ctl.updateContent)
		c.DELETE("/content/:id", ctl.deleteContent)
	})
}

type contentManager struct {
	store     db.Store
	fileStore storage.Storage
}

// POST /api/admin/content
//
// Registers a content item whose file already lives somewhere reachable
// (stream URL, pre-uploaded path).
func (m *contentManager) createContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreateContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	item, err := m.store.CreateContentItem(request.Title, request.Description, request.ContentType,
		request.ContentPath, request.DurationMinutes, request.Tags, user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create content"}
	}
	return item, nil
}

// POST /api/admin/content/upload
//
// Multipart form: "file" plus the same metadata fields as createContent.
func (m *contentManager) uploadContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "missing file"}
	}

	title := ctx.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}
	contentType := ctx.PostForm("content_type")
	if contentType == "" {
		contentType = "audio"
	}

	path, err := m.fileStore.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("content upload failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not store file"}
	}

	item, err := m.store.CreateContentItem(title, nil, contentType, path, nil, nil, user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create content"}
	}
	return item, nil
}

// GET /api/admin/content
func (m *contentManager) listContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	items, err := m.store.ListContentItems()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list content"}
	}
	return items, nil
}

// GET /api/admin/content/:id
func (m *contentManager) getContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	contentID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	item, err := m.store.GetContentItemByID(contentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "content not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch content"}
	}
	return item, nil
}

// PUT /api/admin/content/:id
func (m *contentManager) updateContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	contentID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := m.store.UpdateContentItem(contentID, request.Title, request.Description,
		request.ContentType, request.ContentPath, request.DurationMinutes, request.Tags); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update content"}
	}

	item, err := m.store.GetContentItemByID(contentID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch content"}
	}
	return item, nil
}

// DELETE /api/admin/content/:id
func (m *contentManager) deleteContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	contentID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := m.store.DeleteContentItem(contentID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return gin.H{"deleted": contentID}, nil
}
