// Package texatlas maps the layers of a layered document onto a packed
// texture atlas, and recovers the individual sprites from a packed texture
// and its manifest.
//
// # Quick start
//
// Export writes the manifest next to the texture:
//
//	doc, err := texatlas.LoadDocument("hero.json")
//	// ...
//	var env texatlas.Env
//	res, err := env.ExportAtlas(doc, "out")
//	fmt.Println(res.Message) // Successfully exported out/hero.xml.
//
// Import slices the texture back into sprites:
//
//	res, err := env.ImportTex("out/hero.tex", "out/hero.xml")
//	for _, r := range res.Regions {
//		texatlas.WriteRegionPNG("sprites", r)
//	}
//
// # Coordinates
//
// Documents use a top-left origin in pixels. The manifest stores
// normalized coordinates with a bottom-left origin: u1/u2 are the left and
// right columns divided by the document width, v1/v2 the flipped bottom and
// top rows divided by the document height. When the document declares a
// grid, off-grid regions are snapped outward to whole cells first (see
// [SnapToGrid]).
//
// # Manifest
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<Atlas>
//	  <Texture filename="hero.tex" />
//	  <Elements>
//	    <Element name="idle.tex" u1="0" u2="0.25" v1="0.75" v2="1" />
//	  </Elements>
//	</Atlas>
//
// # Host environment
//
// Every operation hangs off an explicit [Env], which carries the texture
// [Codec] and the debug switch. The zero Env uses [ImageCodec]. Operations
// never panic across the Env boundary; failures are returned as [*Error]
// values whose kind is one of [ErrInvalidInput], [ErrIO], [ErrDecode] or
// [ErrManifestParse].
//
// For Ebitengine games, package ebitenatlas loads an exported manifest
// directly as a runtime sprite atlas.
package texatlas
