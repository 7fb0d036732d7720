// Package raycaster is a 2.5D raycasting renderer in the style of
// Wolfenstein 3D.
//
// A scene is a strictly 2D world of vertical wall segments called planes.
// Every frame the renderer casts one ray per screen column from the camera,
// finds the nearest plane it crosses and draws a textured vertical strip
// whose height falls off with distance. The result is a pseudo-3D view from
// a 2D model.
//
// The root package is pure computation: it never opens a window or decodes
// files. Package display presents an [Engine] with [Ebitengine] and polls
// input; package assets decodes images from disk.
//
// # Quick start
//
//	scene := raycaster.NewScene()
//	wall := raycaster.NewPlane(raycaster.Vec(3, -1), raycaster.Vec(3, 1), texture)
//	scene.Add(raycaster.NewPlaneEntity("wall", wall))
//
//	player := raycaster.NewEmpty("player", raycaster.Zero)
//	player.AddScript(raycaster.NewFlatController())
//	scene.Add(player)
//
//	engine, err := raycaster.NewEngine(scene, 640, 360, raycaster.RenderConfig{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	display.Run(engine, display.Config{Title: "Corridor"})
//
// For headless use call [Engine.Step] yourself and read [Engine.Frame], or
// call [Render] on any [Image].
//
// # Geometry
//
// [Vector] doubles as a complex number: [Vector.CMul] composes rotations
// and [Vector.CDiv] recovers the rotation between two directions, so turning
// an entity never needs trigonometry beyond [FromDeg]. A [Ray] is a start
// point plus a direction spanning to its end; [Ray.RS] solves where two rays
// cross.
//
// # Entities and scripts
//
// A [Scene] owns its entities in an arena indexed by [EntityID]; the camera
// is always [CameraID]. An [Entity] carries a transform, an optional plane
// and any number of [Script] values. Moving or turning a plane entity moves
// its plane rigidly around the entity's pivot. Entities can be parented;
// children follow their parent immediately.
//
// Scripts on non-camera entities run once per frame in insertion order,
// receiving an [UpdateContext] with the scene, the frame's [Input] snapshot
// and the [FrameClock] times. Side effects outside the scene go through the
// [System] request queue.
//
// Tweens (via [gween]) animate entity transforms; [TweenScript] runs them
// from the scene update.
//
// # Rendering
//
// [Renderer] writes packed 0xAARRGGBB [Color] values into an [Image]. With
// [RenderConfig.Workers] other than 1 the columns are split into contiguous
// bands rendered concurrently; each band writes only its own columns, so the
// output is identical to a sequential pass.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package raycaster
