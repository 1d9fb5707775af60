package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesy30/portfolio/internal/catalog"
	"github.com/tradesy30/portfolio/internal/config"
	"github.com/tradesy30/portfolio/internal/ogimage"
)

func TestServeRefusesToStartWithoutFormID(t *testing.T) {
	t.Setenv("FORMSPREE_ID", "")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "never.db"))

	err := runServe(serveCmd, nil)

	assert.ErrorIs(t, err, config.ErrMissingFormID)
	_, statErr := os.Stat(os.Getenv("DATABASE_PATH"))
	assert.True(t, os.IsNotExist(statErr), "store must not be opened")
}

func TestProjectsCommandListsSlugs(t *testing.T) {
	var out bytes.Buffer
	projectsCmd.SetOut(&out)
	t.Cleanup(func() { projectsCmd.SetOut(nil) })

	require.NoError(t, runProjects(projectsCmd, nil))

	for _, slug := range catalog.MustLoad().Slugs() {
		assert.Contains(t, out.String(), slug)
	}
	assert.Contains(t, out.String(), "projects OK")
}

func TestOGImageCommandWritesPNG(t *testing.T) {
	var out bytes.Buffer
	ogImageCmd.SetOut(&out)
	t.Cleanup(func() { ogImageCmd.SetOut(nil) })

	prev := ogImageOut
	ogImageOut = filepath.Join(t.TempDir(), "card.png")
	t.Cleanup(func() { ogImageOut = prev })

	require.NoError(t, runOGImage(ogImageCmd, nil))

	f, err := os.Open(ogImageOut)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, ogimage.Width, cfg.Width)
	assert.Equal(t, ogimage.Height, cfg.Height)
}

func TestSetGinMode(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	setGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	setGinMode("bogus")
	assert.Equal(t, gin.DebugMode, gin.Mode())

	setGinMode(gin.TestMode)
	assert.Equal(t, gin.TestMode, gin.Mode())
}
