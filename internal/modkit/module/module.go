// Package module tracks the port sets site modules publish while the site boots
package module

// Provider publishes a named port set; every modkit module is one
type Provider interface {
	Name() string
	Ports() any
}

// Publish records p's ports under p's name
func Publish(p Provider) { Register(p.Name(), p.Ports()) }
