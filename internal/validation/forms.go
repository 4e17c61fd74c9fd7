package validation

import (
	"strings"

	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
)

// Form field limits accepted by the API.
const (
	MinNameLen     = 2
	MinPasswordLen = 6
	MinTitleLen    = 3
	MinContentLen  = 10
)

// Login validates the login form.
func Login(email, password string) error {
	return New().
		Validate("email", email,
			Required("Email is required"),
			Email("Please enter a valid email")).
		Validate("password", password,
			Required("Password is required")).
		Err()
}

// Register validates the registration fields the API receives.
func Register(name, email, password string) error {
	return registerFields(name, email, password).Err()
}

// RegisterForm validates the registration form including the confirmation field.
func RegisterForm(name, email, password, confirm string) error {
	fv := registerFields(name, email, password)
	fv.Validate("confirmPassword", confirm,
		Required("Please confirm your password"),
		Equals(password, "Passwords do not match"))
	return fv.Err()
}

func registerFields(name, email, password string) *FieldValidator {
	return New().
		Validate("name", name,
			Required("Name is required"),
			MinLength(MinNameLen, "Name must be at least 2 characters long")).
		Validate("email", email,
			Required("Email is required"),
			Email("Please enter a valid email")).
		Validate("password", password,
			Required("Password is required"),
			MinLength(MinPasswordLen, "Password must be at least 6 characters long"))
}

// Post validates the create/edit post form.
func Post(title, content, categoryID string) error {
	return New().
		Validate("title", title,
			Required("Title is required"),
			MinLength(MinTitleLen, "Title must be at least 3 characters long")).
		Validate("content", content,
			Required("Content is required"),
			MinLength(MinContentLen, "Content must be at least 10 characters long")).
		Validate("categoryId", categoryID,
			Required("Please select a category")).
		Err()
}

// Image validates an image upload by content type and size.
func Image(contentType string, size, maxBytes int64) error {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return apperrors.ValidationField("image", "Please select an image file")
	}
	if maxBytes > 0 && size > maxBytes {
		return apperrors.ValidationField("image", "Image must be smaller than 5MB")
	}
	return nil
}

// Comment validates a new or edited comment body.
func Comment(content string) error {
	return New().
		Validate("content", content, Required("Comment cannot be empty")).
		Err()
}
