package service

import (
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Upload 上传的文件
type Upload struct {
	Filename string
	Content  io.Reader
}

// PostForm 新建/编辑帖子
type PostForm struct {
	Text    string `json:"text" validate:"notblank"`
	GroupID *uint  `json:"group"`
	// Image 为空表示保持原图
	Image *Upload `json:"-"`
	// ClearImage 编辑时移除已有图片
	ClearImage bool `json:"image-clear"`
}

type CommentForm struct {
	Text string `json:"text" validate:"notblank"`
}

type SignupForm struct {
	Username  string `json:"username" validate:"required,max=150,excludesall= /"`
	Password  string `json:"-" validate:"required,min=8"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

var messages = map[string]string{
	"PostForm.text":       "Cannot create a post without text",
	"CommentForm.text":    "Comment text must not be empty",
	"SignupForm.username": "Enter a valid username of at most 150 characters",
	"SignupForm.password": "Password must be at least 8 characters",
	"SignupForm.email":    "Enter a valid email address",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(f.Name)
			}
			return name
		})
	})
	return validate
}

// ValidateForm 校验表单，返回 nil 或 *ValidationError；不涉及任何渲染
func ValidateForm(form interface{}) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		key := fe.Namespace()
		msg, ok := messages[key]
		if !ok {
			msg = "invalid value (" + fe.Tag() + ")"
		}
		if _, exists := out.Fields[fe.Field()]; !exists {
			out.Fields[fe.Field()] = msg
		}
	}
	return out
}

// ValidatePost 校验并规范化帖子表单（文本去除首尾空白）
func ValidatePost(form *PostForm) error {
	form.Text = strings.TrimSpace(form.Text)
	return ValidateForm(form)
}

func ValidateComment(form *CommentForm) error {
	form.Text = strings.TrimSpace(form.Text)
	return ValidateForm(form)
}

func ValidateSignup(form *SignupForm) error {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	return ValidateForm(form)
}
