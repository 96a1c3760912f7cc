package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routedoc/routedoc/internal/utils"
)

// chdir switches the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

// setupDemoProject writes a small annotated project and makes it the
// working directory, so module discovery through go.mod kicks in.
func setupDemoProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/demo\n\ngo 1.25\n",
		"api/users.go": `// Package api hosts the HTTP handlers.
//
//route::request /api
package api

import "example.com/demo/api/dto"

// UserController serves the user endpoints.
//
//route::request -Path=/users -Consumes=application/json
type UserController struct{}

// List returns a page of users.
//
//route::get /list -Produces=application/json
//route::query page -Default=1
//route::query q -Name=search
func (c *UserController) List(page int, q string) (dto.User, error) {
	return dto.User{}, nil
}

// Create stores a user.
//
//route::post /create
//route::body u
func (c *UserController) Create(u dto.User) error {
	return nil
}

// Legacy is kept for old clients.
//
// Deprecated: use List.
//
//route::get /legacy
func (c *UserController) Legacy() {}
`,
		"api/dto/user.go": `package dto

// Base carries shared identity fields.
type Base struct {
	ID int64
}

// User is the transport shape of one user.
type User struct {
	Base
	Name string
}
`,
	}

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	chdir(t, root)
	return root
}

func quietGenerator() *Generator {
	diag := utils.NewQuietDiagnostics()
	diag.SetOutput(&bytes.Buffer{})
	return NewGenerator(diag)
}

func TestRun_TextReport(t *testing.T) {
	root := setupDemoProject(t)

	reportPath := filepath.Join(root, "routes.txt")
	summary, err := quietGenerator().Run(Config{Out: reportPath}, []string{"./..."})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.PackagesScanned)
	assert.Equal(t, 1, summary.Controllers)
	assert.Equal(t, 3, summary.Routes)
	assert.Equal(t, 0, summary.Warnings)
	assert.Equal(t, reportPath, summary.ReportPath)

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	expected := "example.com/demo/api.UserController:\n" +
		"\t- GET /api/users/list(expects: [application/json])(returns: [application/json])\n" +
		"\t\t- int page (default: 1)\n" +
		"\t\t- string search\n" +
		"\t\toutput: example.com/demo/api/dto.User\n" +
		"\t\t\t- string Name\n" +
		"\t\t\t- int64 ID\n" +
		"\t- POST /api/users/create(expects: [application/json])\n" +
		"\t\tinput: example.com/demo/api/dto.User\n" +
		"\t\t\t- string Name\n" +
		"\t\t\t- int64 ID\n" +
		"\t- [DEPRECATED] GET /api/users/legacy(expects: [application/json])\n"

	assert.Equal(t, expected, string(content))
}

func TestRun_TextReportIsReproducible(t *testing.T) {
	root := setupDemoProject(t)
	reportPath := filepath.Join(root, "routes.txt")

	_, err := quietGenerator().Run(Config{Out: reportPath}, []string{"./..."})
	require.NoError(t, err)
	first, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	_, err = quietGenerator().Run(Config{Out: reportPath}, []string{"./..."})
	require.NoError(t, err)
	second, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRun_YAMLReport(t *testing.T) {
	root := setupDemoProject(t)
	reportPath := filepath.Join(root, "routes.yaml")

	_, err := quietGenerator().Run(Config{Out: reportPath, Format: FormatYAML}, []string{"./..."})
	require.NoError(t, err)

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	out := string(content)

	assert.Contains(t, out, "controllers:")
	assert.Contains(t, out, "type: example.com/demo/api.UserController")
	assert.Contains(t, out, "handler: UserController.List")
	assert.Contains(t, out, "path: /api/users/list")
	assert.Contains(t, out, "deprecated: true")
}

func TestRun_ModuleOverride(t *testing.T) {
	root := setupDemoProject(t)

	// Drop go.mod so only the override can supply the module path.
	require.NoError(t, os.Remove(filepath.Join(root, "go.mod")))

	reportPath := filepath.Join(root, "routes.txt")
	_, err := quietGenerator().Run(Config{Module: "custom.io/app", Out: reportPath}, []string{"./..."})
	require.NoError(t, err)

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "custom.io/app/api.UserController:")
}

func TestRun_Errors(t *testing.T) {
	t.Run("no Go sources", func(t *testing.T) {
		chdir(t, t.TempDir())
		_, err := quietGenerator().Run(Config{Out: "routes.txt"}, []string{"./..."})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no Go source directories")
	})

	t.Run("missing go.mod without override", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
		chdir(t, dir)

		_, err := quietGenerator().Run(Config{Out: "routes.txt"}, []string{"./..."})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--module")
	})

	t.Run("unknown format", func(t *testing.T) {
		setupDemoProject(t)
		_, err := quietGenerator().Run(Config{Out: "routes.txt", Format: "xml"}, []string{"./..."})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown report format "xml"`)
	})
}
