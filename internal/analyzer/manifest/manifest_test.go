package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/model"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCargo(t *testing.T) {
	path := write(t, t.TempDir(), "Cargo.toml", `[package]
name = "gateway"
version = "1.2.0"
edition = "2021"

[dependencies]
serde = "1.0"
actix-web = { version = "4.9", features = ["rustls"] }

[dev-dependencies]
mockall = "0.13"
`)

	m, err := ParseCargo(path)
	require.NoError(t, err)

	assert.Equal(t, "gateway", m.Name)
	assert.Equal(t, "1.2.0", m.Version)
	assert.Equal(t, "2021", m.Metadata.RustEdition)
	assert.Equal(t, "cargo build", m.Metadata.BuildCommand)
	assert.Equal(t, []model.Dependency{
		{Name: "actix-web", Version: "4.9"},
		{Name: "serde", Version: "1.0"},
		{Name: "mockall", Version: "0.13", DevOnly: true},
	}, m.Dependencies)
}

func TestParseCargoInvalid(t *testing.T) {
	path := write(t, t.TempDir(), "Cargo.toml", "[package\nbroken")
	_, err := ParseCargo(path)
	assert.Error(t, err)
}

func TestParseNode(t *testing.T) {
	path := write(t, t.TempDir(), "package.json", `{
  "name": "webapp",
  "version": "2.0.1",
  "main": "src/index.js",
  "engines": {"node": ">=18"},
  "scripts": {"build": "vite build"},
  "dependencies": {"react": "^18.3.0", "axios": "^1.7.0"},
  "devDependencies": {"vitest": "^2.0.0"}
}`)

	m, err := ParseNode(path)
	require.NoError(t, err)

	assert.Equal(t, "webapp", m.Name)
	assert.Equal(t, "2.0.1", m.Version)
	assert.Equal(t, ">=18", m.Metadata.NodeVersion)
	assert.Equal(t, "src/index.js", m.Metadata.EntryPoint)
	assert.Equal(t, "npm run build", m.Metadata.BuildCommand)
	assert.Equal(t, []model.Dependency{
		{Name: "axios", Version: "^1.7.0"},
		{Name: "react", Version: "^18.3.0"},
		{Name: "vitest", Version: "^2.0.0", DevOnly: true},
	}, m.Dependencies)
}

func TestParsePyprojectPEP621(t *testing.T) {
	path := write(t, t.TempDir(), "pyproject.toml", `[project]
name = "mlpipe"
version = "0.4.0"
requires-python = ">=3.10"
dependencies = [
  "flask>=2.0",
  "numpy",
  "requests>=2.28; python_version >= '3.8'",
]
`)

	m, err := ParsePyproject(path)
	require.NoError(t, err)

	assert.Equal(t, "mlpipe", m.Name)
	assert.Equal(t, ">=3.10", m.Metadata.PythonVersion)
	assert.Equal(t, []model.Dependency{
		{Name: "flask", Version: ">=2.0"},
		{Name: "numpy", Version: "*"},
		{Name: "requests", Version: ">=2.28"},
	}, m.Dependencies)
}

func TestParsePyprojectPoetry(t *testing.T) {
	path := write(t, t.TempDir(), "pyproject.toml", `[tool.poetry]
name = "poetapp"
version = "1.0.0"

[tool.poetry.dependencies]
python = "^3.11"
django = "^5.0"
`)

	m, err := ParsePyproject(path)
	require.NoError(t, err)

	assert.Equal(t, "poetapp", m.Name)
	assert.Equal(t, "^3.11", m.Metadata.PythonVersion)
	assert.Equal(t, []model.Dependency{{Name: "django", Version: "^5.0"}}, m.Dependencies)
}

func TestParseRequirementsPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "requirements.txt", `# pinned
zzz-last==1.0
flask>=2.0

-r other.txt
aaa-first
`)

	m, err := ParseRequirements(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), m.Name)
	assert.Equal(t, []model.Dependency{
		{Name: "zzz-last", Version: "==1.0"},
		{Name: "flask", Version: ">=2.0"},
		{Name: "aaa-first", Version: "*"},
	}, m.Dependencies)
}

func TestParseCsproj(t *testing.T) {
	path := write(t, t.TempDir(), "Api.csproj", `<Project Sdk="Microsoft.NET.Sdk.Web">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <Version>3.1.0</Version>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="Serilog" Version="4.0.0" />
    <PackageReference Include="Dapper" />
  </ItemGroup>
</Project>`)

	m, err := ParseCsproj(path)
	require.NoError(t, err)

	assert.Equal(t, "Api", m.Name)
	assert.Equal(t, "3.1.0", m.Version)
	assert.Equal(t, "net8.0", m.Metadata.TargetFramework)
	assert.Equal(t, []model.Dependency{
		{Name: "Serilog", Version: "4.0.0"},
		{Name: "Dapper", Version: "*"},
	}, m.Dependencies)
}

func TestParseSlnResolvesReferencedCsproj(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "App.csproj", `<Project>
  <PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup>
</Project>`)
	path := write(t, dir, "All.sln", `Microsoft Visual Studio Solution File, Format Version 12.00
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App", "App.csproj", "{1234}"
EndProject
`)

	m, err := ParseSln(path)
	require.NoError(t, err)
	assert.Equal(t, "App", m.Name)
	assert.Equal(t, "net8.0", m.Metadata.TargetFramework)
}

func TestParseGoMod(t *testing.T) {
	path := write(t, t.TempDir(), "go.mod", `module github.com/acme/worker

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	github.com/rs/zerolog v1.32.0
)

require github.com/inconshreveable/mousetrap v1.1.0 // indirect
`)

	m, err := ParseGoMod(path)
	require.NoError(t, err)

	assert.Equal(t, "worker", m.Name)
	assert.Equal(t, "1.22", m.Metadata.Extra["go_version"])
	assert.Equal(t, []model.Dependency{
		{Name: "github.com/spf13/cobra", Version: "v1.8.0"},
		{Name: "github.com/rs/zerolog", Version: "v1.32.0"},
	}, m.Dependencies)
}

func TestParsePom(t *testing.T) {
	path := write(t, t.TempDir(), "pom.xml", `<?xml version="1.0"?>
<project>
  <artifactId>orders</artifactId>
  <version>2.3.0</version>
  <dependencies>
    <dependency>
      <groupId>org.springframework</groupId>
      <artifactId>spring-core</artifactId>
      <version>6.1.0</version>
    </dependency>
    <dependency>
      <groupId>org.junit.jupiter</groupId>
      <artifactId>junit-jupiter</artifactId>
      <version>5.10.0</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
</project>`)

	m, err := ParsePom(path)
	require.NoError(t, err)

	assert.Equal(t, "orders", m.Name)
	assert.Equal(t, "2.3.0", m.Version)
	assert.Equal(t, []model.Dependency{
		{Name: "org.springframework:spring-core", Version: "6.1.0"},
		{Name: "org.junit.jupiter:junit-jupiter", Version: "5.10.0", DevOnly: true},
	}, m.Dependencies)
}

func TestParseGradle(t *testing.T) {
	path := write(t, t.TempDir(), "build.gradle", `plugins { id 'java' }

dependencies {
    implementation 'com.google.guava:guava:33.0.0-jre'
    testImplementation("org.mockito:mockito-core:5.11.0")
    implementation project(':shared')
}
`)

	m, err := ParseGradle(path)
	require.NoError(t, err)

	assert.Equal(t, "gradle build", m.Metadata.BuildCommand)
	assert.Equal(t, []model.Dependency{
		{Name: "com.google.guava:guava", Version: "33.0.0-jre"},
		{Name: "org.mockito:mockito-core", Version: "5.11.0", DevOnly: true},
	}, m.Dependencies)
}

func TestParseComposer(t *testing.T) {
	path := write(t, t.TempDir(), "composer.json", `{
  "name": "acme/shop",
  "require": {
    "php": ">=8.2",
    "laravel/framework": "^11.0"
  },
  "require-dev": {
    "phpunit/phpunit": "^11.0"
  }
}`)

	m, err := ParseComposer(path)
	require.NoError(t, err)

	assert.Equal(t, "acme/shop", m.Name)
	assert.Equal(t, ">=8.2", m.Metadata.Extra["php_version"])
	assert.Equal(t, []model.Dependency{
		{Name: "laravel/framework", Version: "^11.0"},
		{Name: "phpunit/phpunit", Version: "^11.0", DevOnly: true},
	}, m.Dependencies)
}

func TestSplitRequirement(t *testing.T) {
	tests := []struct {
		in, name, version string
	}{
		{"flask>=2.0", "flask", ">=2.0"},
		{"numpy", "numpy", "*"},
		{"requests==2.31.0", "requests", "==2.31.0"},
		{"uvicorn[standard]>=0.29", "uvicorn", "[standard]>=0.29"},
		{"pyyaml ; sys_platform == 'linux'", "pyyaml", "*"},
	}
	for _, tt := range tests {
		name, version := splitRequirement(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.version, version, tt.in)
	}
}
