package service

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bienestar-app/bienestar/internal/markdown"
	"github.com/bienestar-app/bienestar/internal/model"
)

type resourceMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

// ResourceService serves the wellbeing pages recommendations link to.
// Pages are rendered once when the service is built.
type ResourceService struct {
	resources []*model.Resource
	bySlug    map[string]*model.Resource
}

// NewResourceService renders every *.md file at the root of fsys; the file
// name without extension is the slug.
func NewResourceService(fsys fs.FS) (*ResourceService, error) {
	files, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}

	parser := markdown.NewParser()
	s := &ResourceService{bySlug: make(map[string]*model.Resource, len(files))}
	for _, file := range files {
		source, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var meta resourceMeta
		html, err := parser.Render(source, &meta)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", file, err)
		}

		slug := strings.TrimSuffix(path.Base(file), ".md")
		resource := &model.Resource{
			Slug:        slug,
			Title:       meta.Title,
			Description: meta.Description,
			Order:       meta.Order,
			Content:     string(source),
			HTMLContent: string(html),
		}
		if resource.Title == "" {
			resource.Title = slug
		}

		s.resources = append(s.resources, resource)
		s.bySlug[slug] = resource
	}

	sort.SliceStable(s.resources, func(i, j int) bool {
		if s.resources[i].Order != s.resources[j].Order {
			return s.resources[i].Order < s.resources[j].Order
		}
		return s.resources[i].Slug < s.resources[j].Slug
	})

	return s, nil
}

// List returns every resource without its body.
func (s *ResourceService) List() []model.Resource {
	list := make([]model.Resource, len(s.resources))
	for i, r := range s.resources {
		list[i] = model.Resource{Slug: r.Slug, Title: r.Title, Description: r.Description, Order: r.Order}
	}
	return list
}

func (s *ResourceService) BySlug(slug string) (*model.Resource, error) {
	r, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrResourceNotFound
	}
	copied := *r
	return &copied, nil
}

// Missing returns the slugs in want that have no page.
func (s *ResourceService) Missing(want []string) []string {
	var missing []string
	for _, slug := range want {
		if _, ok := s.bySlug[slug]; !ok {
			missing = append(missing, slug)
		}
	}
	return missing
}
