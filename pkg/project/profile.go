package project

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// Link is a social or contact link.
type Link struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Profile is the owner information behind the About, Contact and Resume
// pages.
type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Handle   string   `yaml:"handle" json:"handle"`
	Headline string   `yaml:"headline" json:"headline"`
	Summary  string   `yaml:"summary" json:"summary"`
	About    []string `yaml:"about" json:"about"`
	Skills   []string `yaml:"skills" json:"skills"`
	Resume   string   `yaml:"resume" json:"resume"`
	Email    string   `yaml:"email" json:"email"`
	Links    []Link   `yaml:"links" json:"links"`
}

// DefaultProfile returns the profile compiled into the binary.
func DefaultProfile() (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(defaultProfile, &p); err != nil {
		return Profile{}, fmt.Errorf("project: decode profile: %w", err)
	}
	return p, nil
}

// Greeting is the first line of a fresh terminal transcript.
func (p Profile) Greeting() string {
	name := p.Handle
	if name == "" {
		name = p.Name
	}
	return fmt.Sprintf("Welcome to %s's terminal. Type \"help\" for available commands.", name)
}
