// Package domain holds the sign in and sign up forms and ports
package domain

// SignIn is the POST /signin body; username carries the email
type SignIn struct {
	Username string `form:"username" validate:"required,email,max=64"`
	Password string `form:"password" validate:"required,max=32"`
}

// SignUp is the POST /signup body
type SignUp struct {
	Email           string `form:"email" validate:"required,email,max=64"`
	Password        string `form:"password" validate:"required,min=8,max=32"`
	PasswordConfirm string `form:"passwordConfirm" validate:"required,eqfield=Password"`
}
