package content

import (
	"fmt"
	"strings"

	"showcase/backend/internal/model"
)

// Catalog is the read-only list of blog posts, in page order.
type Catalog struct {
	Posts []model.Post `yaml:"posts"`
}

// Default is the catalog served when no posts file is configured.
func Default() *Catalog {
	return &Catalog{Posts: []model.Post{
		{
			ID:    "post-1",
			Title: "Getting Started with Web Development",
			Body:  "HTML gives a page its structure, CSS its look and JavaScript its behaviour. Start small and build one page end to end.",
			Tags:  []string{"html", "css", "javascript", "beginner"},
		},
		{
			ID:    "post-2",
			Title: "Responsive Layouts with Flexbox and Grid",
			Body:  "Flexbox handles one dimension, Grid handles two. Media queries decide when a layout should change.",
			Tags:  []string{"css", "design", "responsive"},
		},
		{
			ID:    "post-3",
			Title: "Saving State in the Browser",
			Body:  "Local storage keeps small JSON documents across reloads. Validate what you read back before trusting it.",
			Tags:  []string{"javascript", "storage", "tips"},
		},
	}}
}

// Load reads a YAML catalog from path. An empty path yields Default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	var catalog Catalog
	if err := readYAML(path, &catalog); err != nil {
		return nil, err
	}
	if err := checkIDs("post", catalog.IDs()); err != nil {
		return nil, fmt.Errorf("posts file %s: %w", path, err)
	}
	return &catalog, nil
}

func (c *Catalog) Get(id string) (model.Post, bool) {
	for _, post := range c.Posts {
		if post.ID == id {
			return post, true
		}
	}
	return model.Post{}, false
}

// IDs returns the post ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Posts))
	for _, post := range c.Posts {
		ids = append(ids, post.ID)
	}
	return ids
}
