// Package catalog хранит каталог курсов, загруженный из YAML-файла при старте.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/institute-api/internal/models"
)

// ErrEmptyCatalog возвращается, если в файле нет ни одного курса.
var ErrEmptyCatalog = errors.New("catalog has no courses")

type file struct {
	Courses []models.Course `yaml:"courses"`
}

// Service отдает курсы без обращения к диску после загрузки.
type Service struct {
	courses []models.Course
}

// Load читает каталог из файла.
func Load(path string) (*Service, error) {
	const op = "services.catalog.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: parse %s: %w", op, path, err)
	}
	svc, err := NewService(f.Courses)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return svc, nil
}

// NewService проверяет курсы и создает Service.
func NewService(courses []models.Course) (*Service, error) {
	if len(courses) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[int]struct{}, len(courses))
	for _, c := range courses {
		if c.Title == "" || c.Category == "" {
			return nil, fmt.Errorf("course %d: title and category are required", c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("course %d: duplicate id", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return &Service{courses: courses}, nil
}

// Courses возвращает курсы категории в порядке файла; пустая категория означает все курсы.
func (s *Service) Courses(category string) []models.Course {
	result := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if category != "" && c.Category != category {
			continue
		}
		if c.Curriculum == nil {
			c.Curriculum = []string{}
		}
		result = append(result, c)
	}
	return result
}

// Categories возвращает категории в порядке первого появления.
func (s *Service) Categories() []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, c := range s.courses {
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		result = append(result, c.Category)
	}
	return result
}
