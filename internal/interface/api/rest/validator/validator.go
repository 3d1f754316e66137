package validator

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"image-hosting-api/internal/interface/api/rest/dto/auth"
	"image-hosting-api/internal/interface/api/rest/dto/user"
)

const (
	minPasswordLen = 7
	maxPasswordLen = 72 // bcrypt safe
	maxUsernameLen = 150
)

var (
	// extension and declared content type -> decoded format family
	allowedExtensions   = map[string]string{"jpg": "jpeg", "jpeg": "jpeg", "png": "png"}
	allowedContentTypes = map[string]string{"image/jpg": "jpeg", "image/jpeg": "jpeg", "image/png": "png"}
	allowedFormats      = map[string]struct{}{"jpeg": {}, "png": {}}

	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

	ErrInvalidID  = errors.New("id must be a positive integer")
	ErrInvalidTTL = errors.New("expiration_time_seconds must be an integer")
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParseTTL reads the optional expiration_time_seconds query value. Range
// checks belong to the link service.
func ParseTTL(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, ErrInvalidTTL
	}
	return &v, nil
}

// ValidateImageUpload checks extension, declared content type, size and the
// decoded format of an uploaded file and returns its bytes.
func ValidateImageUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, map[string]string) {
	errs := make(map[string]string)

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	extFormat, ok := allowedExtensions[ext]
	if !ok {
		errs["image"] = fmt.Sprintf("%s - invalid file extension, only jpg, jpeg, png are accepted", ext)
		return nil, errs
	}

	ct := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	ctFormat, ok := allowedContentTypes[ct]
	if !ok {
		errs["image"] = fmt.Sprintf("%s - invalid content type, only image/jpg, image/jpeg, image/png are accepted", ct)
		return nil, errs
	}

	if fh.Size <= 0 || fh.Size > maxBytes {
		errs["image"] = fmt.Sprintf("file must be between 1 and %d bytes", maxBytes)
		return nil, errs
	}

	f, err := fh.Open()
	if err != nil {
		errs["image"] = "cannot read the uploaded file"
		return nil, errs
	}
	defer f.Close()

	payload, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil || int64(len(payload)) > maxBytes {
		errs["image"] = "cannot read the uploaded file"
		return nil, errs
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		errs["image"] = "cannot open the file as an image"
		return nil, errs
	}
	if _, ok := allowedFormats[format]; !ok {
		errs["image"] = fmt.Sprintf("%s - invalid file format, only jpeg and png are accepted", format)
		return nil, errs
	}
	if format != extFormat {
		errs["image"] = fmt.Sprintf("%s - file content does not match the .%s extension", format, ext)
		return nil, errs
	}
	if format != ctFormat {
		errs["image"] = fmt.Sprintf("%s - file content does not match the %s content type", format, ct)
		return nil, errs
	}

	return payload, nil
}

func ValidateRegistration(r user.Request) map[string]string {
	errs := make(map[string]string)

	username := strings.TrimSpace(r.Username)
	email := strings.ToLower(strings.TrimSpace(r.Email))

	if username == "" {
		errs["username"] = "username is required"
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs["username"] = fmt.Sprintf("username must be at most %d characters", maxUsernameLen)
	} else if !usernameRe.MatchString(username) {
		errs["username"] = "allowed characters: letters, digits and @/./+/-/_"
	}

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if msg := checkPassword(r.Password); msg != "" {
		errs["password"] = msg
	}

	if r.AccountTypeID == 0 {
		errs["account_type_id"] = "account_type_id is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateChangePassword(r user.ChangePasswordRequest) map[string]string {
	errs := make(map[string]string)

	if r.OldPassword == "" {
		errs["old_password"] = "old_password is required"
	}
	if msg := checkPassword(r.NewPassword); msg != "" {
		errs["new_password"] = msg
	} else if r.NewPassword == r.OldPassword {
		errs["new_password"] = "new password must differ from the old one"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkPassword(p string) string {
	if strings.TrimSpace(p) == "" {
		return "password is required"
	}
	if l := utf8.RuneCountInString(p); l < minPasswordLen || l > maxPasswordLen {
		return fmt.Sprintf("password length must be %d-%d characters", minPasswordLen, maxPasswordLen)
	}
	return ""
}
