package utils

import (
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AllowedUploadContentTypes is the set of allowed content types for media uploads.
var AllowedUploadContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

// MaxUploadSize is the maximum allowed file size for uploads (20MB, hero
// videos included).
const MaxUploadSize = 20 << 20

var imageURLPattern = regexp.MustCompile(`(?i)^https?://\S+\.(jpg|jpeg|png|webp|gif)(\?\S*)?$`)

// IsImageURL reports whether s looks like a direct link to an image file.
func IsImageURL(s string) bool {
	return imageURLPattern.MatchString(s)
}

// ValidateFileUpload checks that the uploaded file has an allowed content
// type and does not exceed the maximum file size.
func ValidateFileUpload(fh *multipart.FileHeader) error {
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of 20MB", fh.Size)
	}

	contentType := fh.Header.Get("Content-Type")
	if !AllowedUploadContentTypes[contentType] {
		return fmt.Errorf("invalid file type '%s'; allowed types: image/jpeg, image/png, image/webp, image/gif, video/mp4, video/webm", contentType)
	}

	return nil
}

// SanitizeValidationError takes a validator error and returns a user-friendly
// message without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "محتوى الطلب غير صالح"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("الحقل %s مطلوب", field))
		case "min":
			messages = append(messages, fmt.Sprintf("الحقل %s قصير جداً (الحد الأدنى %s)", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("الحقل %s طويل جداً (الحد الأقصى %s)", field, fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("قيمة %s يجب ألا تقل عن %s", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("قيمة %s غير مسموح بها", field))
		default:
			messages = append(messages, fmt.Sprintf("الحقل %s غير صالح", field))
		}
	}

	if len(messages) == 0 {
		return "محتوى الطلب غير صالح"
	}

	return strings.Join(messages, "؛ ")
}
