package model

// Project is one entry of the portfolio showcase.
type Project struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Features     []string `json:"features" yaml:"features"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	GitHub       string   `json:"github" yaml:"github"`
	Demo         string   `json:"demo" yaml:"demo"`
}
