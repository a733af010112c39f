package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// techSnippet holds the badge line and install/run snippet rendered for one
// detected technology.
type techSnippet struct {
	Badge   string
	Install string
}

var techSnippets = map[string]techSnippet{
	"Go": {
		Badge:   "![Go](https://img.shields.io/badge/Go-00ADD8?logo=go&logoColor=white)",
		Install: "```sh\ngo build ./...\ngo test ./...\n```",
	},
	"JavaScript": {
		Badge:   "![JavaScript](https://img.shields.io/badge/JavaScript-F7DF1E?logo=javascript&logoColor=black)",
		Install: "```sh\nnpm install\nnpm test\n```",
	},
	"Python": {
		Badge:   "![Python](https://img.shields.io/badge/Python-3776AB?logo=python&logoColor=white)",
		Install: "```sh\npip install -r requirements.txt\n```",
	},
	"Rust": {
		Badge:   "![Rust](https://img.shields.io/badge/Rust-000000?logo=rust&logoColor=white)",
		Install: "```sh\ncargo build\ncargo test\n```",
	},
	"Java": {
		Badge:   "![Java](https://img.shields.io/badge/Java-ED8B00?logo=openjdk&logoColor=white)",
		Install: "```sh\nmvn package\n```",
	},
	"Docker": {
		Badge:   "![Docker](https://img.shields.io/badge/Docker-2496ED?logo=docker&logoColor=white)",
		Install: "```sh\ndocker build -t {{name}} .\ndocker run {{name}}\n```",
	},
	"Terraform": {
		Badge:   "![Terraform](https://img.shields.io/badge/Terraform-844FBA?logo=terraform&logoColor=white)",
		Install: "```sh\nterraform init\nterraform plan\n```",
	},
}

var readmeTemplate = template.Must(template.New("readme").Parse(`# {{.Name}}

{{.Badges}}

{{.Description}}

## Getting started

{{range .Snippets}}{{.}}

{{end}}---
_Lab project published with studyops._
`))

// RenderReadme fills the README template with project metadata and the
// badge/install snippets for each detected technology.
func RenderReadme(p Project, description string) (string, error) {
	if description == "" {
		description = fmt.Sprintf("Learning lab project: %s.", p.Name)
	}

	var badges []string
	var snippets []string
	for _, tech := range p.Techs {
		s, ok := techSnippets[tech]
		if !ok {
			continue
		}
		badges = append(badges, s.Badge)
		snippets = append(snippets, strings.ReplaceAll(s.Install, "{{name}}", p.Name))
	}

	var b strings.Builder
	err := readmeTemplate.Execute(&b, struct {
		Name        string
		Description string
		Badges      string
		Snippets    []string
	}{
		Name:        p.Name,
		Description: description,
		Badges:      strings.Join(badges, " "),
		Snippets:    snippets,
	})
	if err != nil {
		return "", fmt.Errorf("render readme: %w", err)
	}
	return b.String(), nil
}

// WriteReadmeIfAbsent renders and writes README.md in the project directory
// unless one already exists. Reports whether a write happened.
func WriteReadmeIfAbsent(p Project, description string) (bool, error) {
	path := filepath.Join(p.Path, "README.md")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat readme: %w", err)
	}

	content, err := RenderReadme(p, description)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write readme: %w", err)
	}
	return true, nil
}
