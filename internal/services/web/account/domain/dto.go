// Package domain holds account forms, views and ports
package domain

import (
	pnet "reviewlens/internal/platform/net"
	"reviewlens/internal/ui"
)

// ProfileForm is the POST /users/me body
type ProfileForm struct {
	Email string `form:"email" validate:"required,email,max=64"`
}

// ColorForm sets or, with an empty color, clears one series colour
type ColorForm struct {
	Key   string `form:"key" validate:"required,max=64,printascii"`
	Color string `form:"color" validate:"omitempty,len=7,hexcolor"`
}

// ColorPref is one stored override; Key is a source or source_type
type ColorPref struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// Account is the account page model
type Account struct {
	User          *pnet.Principal
	Profile       ui.Form
	ColorsEnabled bool
	Colors        []ColorPref
	ColorForm     ui.Form
	// Keys are the series a colour can be set for
	Keys []string
}
