package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"storeit/storage-api/model"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name is too long")
	ErrNoFile          = errors.New("no file provided")
	ErrNoSpace         = errors.New("not enough storage space")
)

const maxFileNameSize = 255

// FileValidator checks an incoming upload against the size limit and the
// owner's remaining quota, then opens the file and sniffs its content
// type from the payload. The part header is client-controlled so it is
// never trusted for storage. Returns the status code to respond with on
// failure; on success the caller owns the returned file, rewound to the
// start.
func FileValidator(fh *multipart.FileHeader, db *gorm.DB, ownerID string) (int, multipart.File, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, "", ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, "", ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, "", ErrFileTooLarge
	}

	if db != nil {
		var usedSpace int64

		err := db.
			Model(model.File{}).
			Where("owner_id = ?", ownerID).
			Select("COALESCE(SUM(size), 0)").
			Find(&usedSpace).
			Error
		if err != nil {
			return http.StatusInternalServerError, nil, "", err
		}

		if usedSpace+fh.Size > viper.GetInt64("storage.max_usage") {
			return http.StatusConflict, nil, "", ErrNoSpace
		}
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	return 0, f, mime.String(), nil
}
