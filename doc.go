// Package cadence binds a retained animation engine to a declarative
// component tree.
//
// Two components do the work. A [Timeline] owns an engine timeline, collects
// the nodes named in its Target elements and hands both down to nested
// components as a [Context]. A [Tween] owns a single engine tween or a
// stagger group; inside a Timeline it animates the timeline's targets (or
// its own child nodes, when it has some) and registers itself into the
// timeline at its Position, Align and Stagger.
//
// The animation maths lives in the [anim] sub-package. This package only
// decides which engine objects exist, where they are placed, and which
// setters run when props change.
//
// # Quick start
//
//	scene := cadence.NewScene(anim.New(anim.Config{}))
//	a := cadence.NewRect("a", 20, 20, cadence.ColorWhite)
//	b := cadence.NewRect("b", 20, 20, cadence.ColorWhite)
//
//	scene.Render(cadence.TimelineProps{
//		ID:     "intro",
//		Target: []cadence.Element{a, b},
//		Children: []cadence.Element{
//			cadence.TweenProps{To: anim.Vars{"x": 200}},
//			cadence.TweenProps{To: anim.Vars{"alpha": 0}, Position: "-=0.25"},
//		},
//	})
//
//	// every frame:
//	scene.Update(1.0 / 60)
//
// Calling [Scene.Render] again with new props updates the mounted
// components in place. Slots are matched by index; a slot whose element
// kind changes is unmounted and mounted afresh.
//
// # Nodes
//
// Every animation target is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; *Node elements rendered by a component are attached to it.
// Besides the transform and appearance fields, a node exposes free-form
// numeric properties through [Node.SetValue].
//
// # Playback control
//
// PlayState, Progress, TotalProgress and Duration props are diffed against
// the previous render and pushed to the engine only when they change. The
// same controls can be applied from outside the frame loop with
// [Scene.Enqueue], which the remote sub-package uses for MQTT control.
//
// # Hosts and adapters
//
// The ebitenhost sub-package draws a scene in an Ebitengine window, the
// scenefile sub-package builds element trees from YAML, and the ecs
// sub-module forwards animation events into a Donburi world.
//
// # Threading
//
// Everything except [Scene.Enqueue] must be called from the goroutine that
// drives the frame loop.
package cadence
