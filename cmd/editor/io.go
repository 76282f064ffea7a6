package main

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"golang.design/x/clipboard"

	"github.com/milk9111/tilemapper/levels"
	"github.com/milk9111/tilemapper/prefabs"
)

// normalizeSavePath turns the file field into a document path. Bare names
// go under levels/ and get a .json extension.
func normalizeSavePath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if filepath.IsAbs(name) || strings.ContainsRune(filepath.ToSlash(name), '/') {
		return name
	}
	return filepath.Join("levels", name)
}

// saveMap writes the open map to the path in the file field, or to the
// session's current path when the field is empty.
func (g *EditorGame) saveMap() {
	path := normalizeSavePath(g.ui.Left.FileNameInput.GetText())
	if err := g.sess.SaveDocument(path); err != nil {
		g.report(err)
		return
	}
	g.ui.Left.FileNameInput.SetText(g.sess.Path)
	g.rememberDocument(g.sess.Path)
	g.setStatus("saved " + g.sess.Path)
}

// openMap replaces the open map. Paths that do not exist on disk are tried
// against the maps bundled with the editor.
func (g *EditorGame) openMap(path string) {
	path = normalizeSavePath(path)
	if path == "" {
		g.setStatus("no map file given")
		return
	}
	err := g.sess.LoadDocument(path)
	if errors.Is(err, fs.ErrNotExist) && slices.Contains(levels.Bundled(), filepath.Base(path)) {
		err = g.openBundled(filepath.Base(path))
	}
	if err != nil {
		g.report(err)
		return
	}
	g.afterRestore()
	g.ui.Left.FileNameInput.SetText(g.sess.Path)
	g.rememberDocument(g.sess.Path)
	g.setStatus("opened " + g.sess.Path)
}

func (g *EditorGame) openBundled(name string) error {
	doc, err := levels.LoadFromFS(name)
	if err != nil {
		return err
	}
	if err := g.sess.Restore(doc); err != nil {
		return err
	}
	// Saving writes a copy next to the user's own maps.
	g.sess.Path = filepath.Join("levels", name)
	log.Printf("loaded bundled map %s", name)
	return nil
}

// copyDocument puts the map document JSON on the system clipboard.
func (g *EditorGame) copyDocument() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := levels.Marshal(g.sess.Document())
	if err != nil {
		g.report(err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("copied map document to clipboard")
}

// rememberDocument records path as the map to reopen on the next start.
func (g *EditorGame) rememberDocument(path string) {
	if path == "" || g.cfg.LastDocument == path {
		return
	}
	g.cfg.LastDocument = path
	if err := prefabs.SaveEditorConfig(g.cfgPath, g.cfg); err != nil {
		log.Printf("editor: remember %s: %v", path, err)
	}
}
