package handlers

import (
	"errors"
	"path"
	"path/filepath"

	"gig-marketplace/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

var errAvatarTooLarge = errors.New("avatar file is too large")

// saveAvatar stores an optional multipart "avatar" file under the upload dir
// with a random name and returns its public path. No file means no error.
func saveAvatar(c *gin.Context, cfg config.UploadConfig) (string, error) {
	file, err := c.FormFile("avatar")
	if err != nil {
		return "", nil
	}

	if cfg.MaxSizeMB > 0 && file.Size > cfg.MaxSizeMB*1024*1024 {
		return "", errAvatarTooLarge
	}

	name := uuid.Must(uuid.NewV4()).String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(cfg.Dir, name)); err != nil {
		return "", err
	}

	return path.Join(cfg.PublicPath, name), nil
}
