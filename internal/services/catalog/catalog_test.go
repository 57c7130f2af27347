package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/institute-api/internal/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sample = `
courses:
  - id: 1
    title: "Go Basics"
    category: "Web Development"
    rating: 4.5
    curriculum: ["Syntax", "Goroutines"]
    brochure_url: "/pdfs/go.pdf"
  - id: 2
    title: "Pandas"
    category: "Data Science"
  - id: 3
    title: "Gin"
    category: "Web Development"
`

func TestLoad(t *testing.T) {
	svc, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	all := svc.Courses("")
	require.Len(t, all, 3)
	assert.Equal(t, "Go Basics", all[0].Title)
	assert.Equal(t, "/pdfs/go.pdf", all[0].BrochureURL)
	assert.Equal(t, []string{"Syntax", "Goroutines"}, all[0].Curriculum)
	assert.NotNil(t, all[1].Curriculum)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		errIs   error
		errPart string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			errIs:   os.ErrNotExist,
			errPart: "services.catalog.Load",
		},
		{
			name:    "broken yaml",
			path:    func(t *testing.T) string { return writeFile(t, "courses: [\n") },
			errPart: "parse",
		},
		{
			name:  "empty",
			path:  func(t *testing.T) string { return writeFile(t, "courses: []\n") },
			errIs: ErrEmptyCatalog,
		},
		{
			name: "duplicate id",
			path: func(t *testing.T) string {
				return writeFile(t, "courses:\n  - {id: 1, title: a, category: x}\n  - {id: 1, title: b, category: y}\n")
			},
			errPart: "duplicate id",
		},
		{
			name:    "missing category",
			path:    func(t *testing.T) string { return writeFile(t, "courses:\n  - {id: 1, title: a}\n") },
			errPart: "title and category are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, svc)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.errPart != "" {
				assert.Contains(t, err.Error(), tt.errPart)
			}
		})
	}
}

func TestService_Courses(t *testing.T) {
	svc, err := NewService([]models.Course{
		{ID: 1, Title: "a", Category: "Design"},
		{ID: 2, Title: "b", Category: "Marketing"},
		{ID: 3, Title: "c", Category: "Design"},
	})
	require.NoError(t, err)

	design := svc.Courses("Design")
	require.Len(t, design, 2)
	assert.Equal(t, 1, design[0].ID)
	assert.Equal(t, 3, design[1].ID)

	assert.Empty(t, svc.Courses("design"))
	assert.NotNil(t, svc.Courses("Unknown"))
}

func TestService_Categories(t *testing.T) {
	svc, err := NewService([]models.Course{
		{ID: 1, Title: "a", Category: "Web Development"},
		{ID: 2, Title: "b", Category: "Data Science"},
		{ID: 3, Title: "c", Category: "Web Development"},
		{ID: 4, Title: "d", Category: "Design"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Web Development", "Data Science", "Design"}, svc.Categories())
}

func TestLoad_ShippedCatalog(t *testing.T) {
	svc, err := Load(filepath.Join("..", "..", "..", "config", "courses.yaml"))
	require.NoError(t, err)
	assert.Len(t, svc.Courses(""), 18)
	assert.Equal(t, []string{
		"Web Development", "Data Science", "Mobile Development", "Design",
		"Marketing", "Cyber Security", "Cloud Computing",
	}, svc.Categories())
}
