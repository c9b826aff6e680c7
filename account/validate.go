package account

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PlatformIO account usernames are the e-mail address the account was
// registered with
type usernameInput struct {
	Username string `validate:"required,email,max=254"`
}

// ValidateUsername reports whether username is well formed
func ValidateUsername(username string) error {
	if err := validate.Struct(usernameInput{Username: username}); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidUsername, username)
	}
	return nil
}
