// Package ebitenatlas loads texatlas manifests at runtime for Ebitengine
// games.
//
// An exported texture is loaded as a single atlas page and paired with its
// manifest:
//
//	page, _, _ := ebitenutil.NewImageFromFile("hero.tex")
//	data, _ := os.ReadFile("hero.xml")
//	atlas, err := ebitenatlas.LoadAtlas(data, page)
//
//	screen.DrawImage(atlas.SubImage("idle"), op)
//
// Numbered regions play back as animations:
//
//	run := ebitenatlas.NewFlipbook(atlas, atlas.Frames("run_"), 0.6, ease.Linear, true)
//	run.Update(1.0 / 60)
//	screen.DrawImage(run.Frame(), op)
//
// Unknown region names never fail. They resolve to a 1x1 magenta
// placeholder so missing art is visible on screen, and are logged when
// SetDebug(true) is on.
package ebitenatlas
