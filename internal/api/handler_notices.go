package api

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus-complaint-backend/internal/model"
)

// validNoticeScope accepts "all" or a hostel number within range.
func validNoticeScope(hostel string) bool {
	if hostel == model.NoticeScopeAll {
		return true
	}
	n, err := strconv.Atoi(hostel)
	return err == nil && n >= 1 && n <= 13
}

// CreateNotice publishes a broadcast announcement, optionally with a PDF
// attachment stored under the uploads directory.
func (h *Handler) CreateNotice(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	message := strings.TrimSpace(c.PostForm("message"))
	hostel := strings.TrimSpace(c.PostForm("hostel"))

	switch {
	case title == "" || len(title) > 100:
		fail(c, http.StatusBadRequest, "title is required and must be at most 100 characters")
		return
	case message == "" || len(message) > 1000:
		fail(c, http.StatusBadRequest, "message is required and must be at most 1000 characters")
		return
	case !validNoticeScope(hostel):
		fail(c, http.StatusBadRequest, "hostel must be \"all\" or a number between 1 and 13")
		return
	}

	notice := model.Notice{Title: title, Message: message, Hostel: hostel}

	if file, err := c.FormFile("pdf"); err == nil {
		if file.Size > h.cfg.Uploads.MaxSizeMB<<20 {
			fail(c, http.StatusBadRequest, "attachment exceeds the size limit")
			return
		}
		if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			fail(c, http.StatusBadRequest, "only PDF attachments are accepted")
			return
		}

		name := uuid.NewString() + ".pdf"
		if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.Uploads.Dir, name)); err != nil {
			failInternal(c, err)
			return
		}
		notice.PDFURL = "/uploads/" + name
	}

	if err := h.store.CreateNotice(c.Request.Context(), &notice); err != nil {
		if notice.PDFURL != "" {
			os.Remove(filepath.Join(h.cfg.Uploads.Dir, filepath.Base(notice.PDFURL)))
		}
		failInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Notice published",
		"notice":  notice,
	})
}

// NoticesForHostel lists the notices addressed to a hostel, including the
// campus-wide ones.
func (h *Handler) NoticesForHostel(c *gin.Context) {
	hostel := c.Param("hostel")
	if !validNoticeScope(hostel) {
		fail(c, http.StatusBadRequest, "hostel must be \"all\" or a number between 1 and 13")
		return
	}

	notices, err := h.store.NoticesForHostel(c.Request.Context(), hostel)
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notices": notices})
}

// DeleteNotice removes a notice and its stored attachment.
func (h *Handler) DeleteNotice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid notice id")
		return
	}

	ctx := c.Request.Context()
	notice, err := h.store.NoticeByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Notice not found")
			return
		}
		failInternal(c, err)
		return
	}

	if err := h.store.DeleteNotice(ctx, notice.ID); err != nil {
		failInternal(c, err)
		return
	}

	if notice.PDFURL != "" {
		path := filepath.Join(h.cfg.Uploads.Dir, filepath.Base(notice.PDFURL))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Record is gone either way; the orphaned file is only logged.
			log.Printf("error removing notice attachment %s: %v", path, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notice deleted"})
}
