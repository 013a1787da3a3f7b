package content

import (
	"fmt"
	"strings"

	"showcase/backend/internal/model"
)

// Projects is the read-only portfolio catalog, in page order.
type Projects struct {
	Projects []model.Project `yaml:"projects"`
}

// DefaultProjects is the catalog served when no projects file is configured.
func DefaultProjects() *Projects {
	return &Projects{Projects: []model.Project{
		{
			ID:          "1",
			Title:       "E-Commerce Platform",
			Description: "A comprehensive full-stack e-commerce solution featuring user authentication, product management, shopping cart functionality, and secure payment integration using Stripe.",
			Features: []string{
				"User authentication and authorization",
				"Product catalog with search and filters",
				"Shopping cart and wishlist",
				"Secure payment processing with Stripe",
				"Order tracking and management",
				"Admin dashboard for inventory management",
				"Real-time notifications",
				"Responsive design for all devices",
			},
			Technologies: []string{"React", "Node.js", "Express", "MongoDB", "Stripe API", "JWT", "Redux"},
			GitHub:       "https://github.com",
			Demo:         "https://example.com",
		},
		{
			ID:          "2",
			Title:       "Weather Dashboard",
			Description: "An interactive weather tracking application that provides real-time weather data, forecasts, and historical weather patterns with beautiful visualizations.",
			Features: []string{
				"Current weather conditions",
				"7-day weather forecast",
				"Hourly temperature predictions",
				"Interactive weather maps",
				"Location-based services",
				"Multiple city tracking",
				"Weather alerts and notifications",
				"Historical weather data charts",
			},
			Technologies: []string{"JavaScript", "OpenWeather API", "Chart.js", "Leaflet.js", "HTML5", "CSS3"},
			GitHub:       "https://github.com",
			Demo:         "https://example.com",
		},
		{
			ID:          "3",
			Title:       "Task Management App",
			Description: "A collaborative task management platform designed for teams to organize projects, assign tasks, and track progress in real-time.",
			Features: []string{
				"Create and manage projects",
				"Task assignment and prioritization",
				"Real-time collaboration",
				"Progress tracking with charts",
				"Due date reminders",
				"Team member management",
				"Activity timeline",
				"Export reports",
			},
			Technologies: []string{"React", "Firebase", "Material-UI", "Context API", "Cloud Functions"},
			GitHub:       "https://github.com",
			Demo:         "https://example.com",
		},
		{
			ID:          "4",
			Title:       "Blog Platform",
			Description: "A modern blogging platform with markdown support, rich text editing, and social features for writers and readers.",
			Features: []string{
				"Markdown editor with preview",
				"Rich text formatting",
				"Comment system with moderation",
				"Social sharing integration",
				"SEO optimization",
				"Tag and category system",
				"User profiles and following",
				"Reading time estimation",
			},
			Technologies: []string{"Next.js", "TypeScript", "PostgreSQL", "Prisma", "TailwindCSS", "NextAuth"},
			GitHub:       "https://github.com",
			Demo:         "https://example.com",
		},
		{
			ID:          "5",
			Title:       "Portfolio Analyzer",
			Description: "An investment portfolio tracking and analysis tool that helps users monitor their investments and make data-driven decisions.",
			Features: []string{
				"Real-time stock price tracking",
				"Portfolio performance metrics",
				"Investment allocation charts",
				"Profit/loss calculations",
				"Historical performance analysis",
				"Market news integration",
				"Watchlist management",
				"Export portfolio reports",
			},
			Technologies: []string{"Python", "Flask", "D3.js", "Pandas", "SQLAlchemy", "Alpha Vantage API"},
			GitHub:       "https://github.com",
			Demo:         "https://example.com",
		},
		{
			ID:          "6",
			Title:       "Fitness Tracker",
			Description: "A comprehensive health and fitness tracking mobile application for iOS and Android with workout plans and nutrition tracking.",
			Features: []string{
				"Workout plan creation",
				"Exercise logging with sets/reps",
				"Nutrition tracking and calorie counting",
				"Progress visualization",
				"Body measurements tracking",
				"Custom goal setting",
				"Social features and challenges",
				"Integration with wearable devices",
			},
			Technologies: []string{"React Native", "Redux", "Express", "MongoDB", "JWT", "Chart.js"},
			GitHub:       "https://github.com",
			Demo:         "https://example.com",
		},
	}}
}

// LoadProjects reads a YAML projects catalog. An empty path yields DefaultProjects.
func LoadProjects(path string) (*Projects, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultProjects(), nil
	}

	var projects Projects
	if err := readYAML(path, &projects); err != nil {
		return nil, err
	}
	if err := checkIDs("project", projects.IDs()); err != nil {
		return nil, fmt.Errorf("projects file %s: %w", path, err)
	}
	return &projects, nil
}

func (p *Projects) Get(id string) (model.Project, bool) {
	for _, project := range p.Projects {
		if project.ID == id {
			return project, true
		}
	}
	return model.Project{}, false
}

func (p *Projects) IDs() []string {
	ids := make([]string, 0, len(p.Projects))
	for _, project := range p.Projects {
		ids = append(ids, project.ID)
	}
	return ids
}
