package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Hrafn1377/prosjektravn/initializers"
	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type FilesHandler struct {
	repo *repository.FilesRepository
}

func NewFilesHandler(repo *repository.FilesRepository) *FilesHandler {
	return &FilesHandler{repo: repo}
}

func (h *FilesHandler) List(c *gin.Context) {
	files, err := h.repo.List(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, files)
}

// Create records metadata only, matching the SPA's virtual file list.
// Content uploads go through Upload.
func (h *FilesHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Name is required"))
		return
	}
	file, err := h.repo.Create(c.GetInt("userId"), req.Name, req.Type, req.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, file)
}

// Upload stores a multipart file in the bucket under a generated key and
// records a row pointing at it. The MIME type is sniffed from content, not
// trusted from the client.
func (h *FilesHandler) Upload(c *gin.Context) {
	if initializers.MinioClient == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse(types.ErrorCodeInternal, "file storage is not configured"))
		return
	}
	userID := c.GetInt("userId")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, initializers.Storage.MaxSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, types.NewErrorResponse(types.ErrorCodeValidation, "file size exceeds the limit"))
			return
		}
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file is required"))
		return
	}

	sniff, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot open uploaded file"))
		return
	}
	mt, err := mimetype.DetectReader(sniff)
	_ = sniff.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot detect file type"))
		return
	}
	if !initializers.Storage.TypeAllowed(mt.String()) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file type is not allowed"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot open uploaded file"))
		return
	}
	defer src.Close()

	objectKey := fmt.Sprintf("%d/%s", userID, uuid.NewString())
	_, err = initializers.MinioClient.PutObject(c.Request.Context(), initializers.Storage.Bucket,
		objectKey, src, fileHeader.Size, minio.PutObjectOptions{ContentType: mt.String()})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "failed to store file"))
		return
	}

	file, err := h.repo.CreateUploaded(userID, fileHeader.Filename, mt.String(), fileHeader.Size, objectKey)
	if err != nil {
		// Orphaned object; removal is best-effort.
		_ = initializers.MinioClient.RemoveObject(context.Background(), initializers.Storage.Bucket,
			objectKey, minio.RemoveObjectOptions{})
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, file)
}

// Download returns a presigned URL for an uploaded file.
func (h *FilesHandler) Download(c *gin.Context) {
	if initializers.MinioClient == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse(types.ErrorCodeInternal, "file storage is not configured"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid file id"))
		return
	}
	file, err := h.repo.GetByID(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if file == nil || file.ObjectKey == "" {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "File not found"))
		return
	}
	u, err := initializers.MinioClient.PresignedGetObject(c.Request.Context(),
		initializers.Storage.Bucket, file.ObjectKey, initializers.Storage.Expiry, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "failed to sign download url"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u.String()})
}

func (h *FilesHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid file id"))
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "status is required"))
		return
	}
	file, err := h.repo.UpdateStatus(id, c.GetInt("userId"), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if file == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "File not found"))
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *FilesHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid file id"))
		return
	}
	objectKey, deleted, err := h.repo.Delete(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "File not found"))
		return
	}
	if objectKey != "" && initializers.MinioClient != nil {
		_ = initializers.MinioClient.RemoveObject(context.Background(), initializers.Storage.Bucket,
			objectKey, minio.RemoveObjectOptions{})
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
