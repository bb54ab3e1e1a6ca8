package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikios34/choonpaan/media"
	mw "github.com/mikios34/choonpaan/middleware"
	profilepkg "github.com/mikios34/choonpaan/profile"
)

// maxImageBytes caps profile image uploads.
const maxImageBytes = 10 << 20

// ProfileHandler serves the signed-in principal's own profile.
type ProfileHandler struct {
	editor  profilepkg.Editor
	timeout time.Duration
}

func NewProfileHandler(editor profilepkg.Editor, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{editor: editor, timeout: timeout}
}

func owner(c *gin.Context) (profilepkg.Owner, bool) {
	st, ok := mw.SessionState(c)
	if !ok {
		return profilepkg.Owner{}, false
	}
	return profilepkg.Owner{ID: st.UserID, Role: st.Role, Email: st.UserEmail}, true
}

func (h *ProfileHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		rec, err := h.editor.Load(ctx, o)
		if err != nil {
			writeError(c, "failed to load profile", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": rec})
	}
}

// Update overlays the fields present in the body on the stored profile.
func (h *ProfileHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}
		var changes profilepkg.Changes
		if err := c.ShouldBindJSON(&changes); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		rec, err := h.editor.Save(ctx, o, changes)
		if err != nil {
			writeError(c, "failed to save profile", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": rec})
	}
}

// UploadImage takes a multipart "image" file and attaches its public URL.
func (h *ProfileHandler) UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required", "detail": err.Error()})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image", "detail": err.Error()})
			return
		}
		defer f.Close()

		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		rec, err := h.editor.UploadImage(ctx, o, media.Image{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
		if err != nil {
			writeError(c, "failed to upload image", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": rec})
	}
}
